package repository

import (
	"context"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesBillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.SalesBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SalesBill, error)
	List(ctx context.Context, filter dto.SalesBillFilter) ([]model.SalesBill, int64, error)
	UpdateHeaderTx(tx *gorm.DB, b *model.SalesBill) error
	ReplaceItemsTx(tx *gorm.DB, billID uuid.UUID, items []model.LineItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	HighestBillNumber(ctx context.Context) (string, error)
	OutstandingBalance(ctx context.Context, customerID uuid.UUID, exclude uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type salesBillRepo struct{ db *gorm.DB }

func NewSalesBillRepository(db *gorm.DB) SalesBillRepository { return &salesBillRepo{db: db} }

func (r *salesBillRepo) DB() *gorm.DB { return r.db }

func (r *salesBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.SalesBill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *salesBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SalesBill, error) {
	var b model.SalesBill
	err := r.db.WithContext(ctx).Preload("Items").Preload("Customer").First(&b, id).Error
	return &b, err
}

func (r *salesBillRepo) List(ctx context.Context, filter dto.SalesBillFilter) ([]model.SalesBill, int64, error) {
	var bills []model.SalesBill
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.SalesBill{})
	if filter.Date != "" {
		q = q.Where("bill_date = ?", filter.Date)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("payment_status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Customer").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *salesBillRepo) UpdateHeaderTx(tx *gorm.DB, b *model.SalesBill) error {
	return tx.Model(&model.SalesBill{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"customer_id":      b.CustomerID,
		"bill_date":        b.BillDate,
		"subtotal":         b.Subtotal,
		"discount":         b.Discount,
		"total":            b.Total,
		"previous_balance": b.PreviousBalance,
		"grand_total":      b.GrandTotal,
		"amount_received":  b.AmountReceived,
		"balance_due":      b.BalanceDue,
		"payment_status":   b.PaymentStatus,
	}).Error
}

// ReplaceItemsTx implements the delete-all / insert-all edit contract: a bill
// edit never diffs line items.
func (r *salesBillRepo) ReplaceItemsTx(tx *gorm.DB, billID uuid.UUID, items []model.LineItem) error {
	if err := tx.Where("bill_id = ?", billID).Delete(&model.LineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].BillID = billID
	}
	return tx.Create(&items).Error
}

// DeleteTx removes the line items first (referential cleanup), then the bill.
func (r *salesBillRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("bill_id = ?", id).Delete(&model.LineItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.SalesBill{}, id).Error
}

// HighestBillNumber returns the bill number with the greatest numeric suffix.
// Ordering by length first keeps IB-10000 above IB-9999 — plain lexicographic
// order breaks once the suffix grows a digit.
func (r *salesBillRepo) HighestBillNumber(ctx context.Context) (string, error) {
	var num string
	err := r.db.WithContext(ctx).
		Raw(`SELECT bill_number FROM sales_bills ORDER BY length(bill_number) DESC, bill_number DESC LIMIT 1`).
		Scan(&num).Error
	return num, err
}

// OutstandingBalance sums (total − amount_received) over the customer's
// pending/partial bills, excluding the bill passed in exclude so a bill being
// edited never feeds its own previous balance.
func (r *salesBillRepo) OutstandingBalance(ctx context.Context, customerID uuid.UUID, exclude uuid.UUID) (decimal.Decimal, error) {
	var out decimal.Decimal
	q := r.db.WithContext(ctx).Model(&model.SalesBill{}).
		Select("COALESCE(SUM(total - amount_received), 0)").
		Where("customer_id = ?", customerID).
		Where("payment_status IN ?", []string{model.StatusPending, model.StatusPartial})
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	err := q.Scan(&out).Error
	return out, err
}
