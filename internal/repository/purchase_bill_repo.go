package repository

import (
	"context"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseBillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.PurchaseBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseBill, error)
	List(ctx context.Context, filter dto.PurchaseBillFilter) ([]model.PurchaseBill, int64, error)
	UpdateHeaderTx(tx *gorm.DB, b *model.PurchaseBill) error
	ReplaceLinesTx(tx *gorm.DB, billID uuid.UUID, items []model.PurchaseBillItem, deductions []model.PurchaseDeduction) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	AddPayment(ctx context.Context, p *model.Payment) error
	SumPayments(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error)
	UpdateSettlement(ctx context.Context, billID uuid.UUID, amountPaid, balanceDue decimal.Decimal, status string) error
	DB() *gorm.DB
}

type purchaseBillRepo struct{ db *gorm.DB }

func NewPurchaseBillRepository(db *gorm.DB) PurchaseBillRepository { return &purchaseBillRepo{db: db} }

func (r *purchaseBillRepo) DB() *gorm.DB { return r.db }

func (r *purchaseBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.PurchaseBill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *purchaseBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseBill, error) {
	var b model.PurchaseBill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Deductions").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_on ASC, created_at ASC") }).
		Preload("Farmer").
		First(&b, id).Error
	return &b, err
}

func (r *purchaseBillRepo) List(ctx context.Context, filter dto.PurchaseBillFilter) ([]model.PurchaseBill, int64, error) {
	var bills []model.PurchaseBill
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.PurchaseBill{})
	if filter.Date != "" {
		q = q.Where("bill_date = ?", filter.Date)
	}
	if filter.FarmerID != "" {
		q = q.Where("farmer_id = ?", filter.FarmerID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("payment_status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Deductions").Preload("Payments").Preload("Farmer").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *purchaseBillRepo) UpdateHeaderTx(tx *gorm.DB, b *model.PurchaseBill) error {
	return tx.Model(&model.PurchaseBill{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"farmer_id":               b.FarmerID,
		"bill_date":               b.BillDate,
		"gross_amount":            b.GrossAmount,
		"weight_deduction_amount": b.WeightDeductionAmount,
		"subtotal":                b.Subtotal,
		"total_billable_kg":       b.TotalBillableKg,
		"commission_per_kg":       b.CommissionPerKg,
		"commission_amount":       b.CommissionAmount,
		"other_deductions_total":  b.OtherDeductionsTotal,
		"total":                   b.Total,
		"amount_paid":             b.AmountPaid,
		"balance_due":             b.BalanceDue,
		"payment_status":          b.PaymentStatus,
	}).Error
}

// ReplaceLinesTx rewrites items and deductions wholesale on edit — same
// delete-all / insert-all contract as sales bills. Payments are untouched:
// they are append-only history.
func (r *purchaseBillRepo) ReplaceLinesTx(tx *gorm.DB, billID uuid.UUID, items []model.PurchaseBillItem, deductions []model.PurchaseDeduction) error {
	if err := tx.Where("bill_id = ?", billID).Delete(&model.PurchaseBillItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("bill_id = ?", billID).Delete(&model.PurchaseDeduction{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].BillID = billID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	for i := range deductions {
		deductions[i].BillID = billID
	}
	if len(deductions) > 0 {
		if err := tx.Create(&deductions).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteTx removes children first, payments included — deleting a bill
// abandons its payment history with it.
func (r *purchaseBillRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("bill_id = ?", id).Delete(&model.PurchaseBillItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("bill_id = ?", id).Delete(&model.PurchaseDeduction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("bill_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.PurchaseBill{}, id).Error
}

func (r *purchaseBillRepo) AddPayment(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseBillRepo) SumPayments(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("bill_id = ?", billID).
		Scan(&sum).Error
	return sum, err
}

func (r *purchaseBillRepo) UpdateSettlement(ctx context.Context, billID uuid.UUID, amountPaid, balanceDue decimal.Decimal, status string) error {
	return r.db.WithContext(ctx).Model(&model.PurchaseBill{}).Where("id = ?", billID).Updates(map[string]interface{}{
		"amount_paid":    amountPaid,
		"balance_due":    balanceDue,
		"payment_status": status,
	}).Error
}
