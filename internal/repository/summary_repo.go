package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DayTotals is one day's aggregated money flow. Derived on demand — never
// stored.
type DayTotals struct {
	Date          string          `gorm:"column:day"`
	SalesTotal    decimal.Decimal `gorm:"column:sales_total"`
	SalesReceived decimal.Decimal `gorm:"column:sales_received"`
	PurchaseTotal decimal.Decimal `gorm:"column:purchase_total"`
	PaymentsOut   decimal.Decimal `gorm:"column:payments_out"`
	ExpensesTotal decimal.Decimal `gorm:"column:expenses_total"`
}

// PartyBalance is one customer's or farmer's outstanding position.
type PartyBalance struct {
	PartyID    uuid.UUID       `gorm:"column:party_id"`
	PartyName  string          `gorm:"column:party_name"`
	BillCount  int             `gorm:"column:bill_count"`
	BalanceDue decimal.Decimal `gorm:"column:balance_due"`
}

type SummaryRepository interface {
	DayTotals(ctx context.Context, date string) (*DayTotals, error)
	MonthTotals(ctx context.Context, from, to string) ([]DayTotals, error)
	PendingCustomerBalances(ctx context.Context) ([]PartyBalance, error)
	PendingFarmerBalances(ctx context.Context) ([]PartyBalance, error)
}

type summaryRepo struct{ db *gorm.DB }

func NewSummaryRepository(db *gorm.DB) SummaryRepository { return &summaryRepo{db: db} }

// DayTotals aggregates by the natural date of each flow: bills by bill_date,
// payments by paid_on, expenses by spent_on. A bill's cash received counts on
// its bill date; farmer payments count on the day the money moved.
func (r *summaryRepo) DayTotals(ctx context.Context, date string) (*DayTotals, error) {
	var t DayTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT ?::text AS day,
		  COALESCE((SELECT SUM(total)           FROM sales_bills    WHERE bill_date = ?), 0) AS sales_total,
		  COALESCE((SELECT SUM(amount_received) FROM sales_bills    WHERE bill_date = ?), 0) AS sales_received,
		  COALESCE((SELECT SUM(total)           FROM purchase_bills WHERE bill_date = ?), 0) AS purchase_total,
		  COALESCE((SELECT SUM(amount)          FROM payments       WHERE paid_on   = ?), 0) AS payments_out,
		  COALESCE((SELECT SUM(amount)          FROM expenses       WHERE spent_on  = ?), 0) AS expenses_total`,
		date, date, date, date, date, date).
		Scan(&t).Error
	return &t, err
}

// MonthTotals returns one row per day that had any activity in [from, to].
func (r *summaryRepo) MonthTotals(ctx context.Context, from, to string) ([]DayTotals, error) {
	var rows []DayTotals
	err := r.db.WithContext(ctx).Raw(`
		WITH days AS (
		  SELECT bill_date AS day FROM sales_bills    WHERE bill_date BETWEEN ? AND ?
		  UNION
		  SELECT bill_date        FROM purchase_bills WHERE bill_date BETWEEN ? AND ?
		  UNION
		  SELECT paid_on          FROM payments       WHERE paid_on   BETWEEN ? AND ?
		  UNION
		  SELECT spent_on         FROM expenses       WHERE spent_on  BETWEEN ? AND ?
		)
		SELECT to_char(d.day, 'YYYY-MM-DD') AS day,
		  COALESCE((SELECT SUM(total)           FROM sales_bills    WHERE bill_date = d.day), 0) AS sales_total,
		  COALESCE((SELECT SUM(amount_received) FROM sales_bills    WHERE bill_date = d.day), 0) AS sales_received,
		  COALESCE((SELECT SUM(total)           FROM purchase_bills WHERE bill_date = d.day), 0) AS purchase_total,
		  COALESCE((SELECT SUM(amount)          FROM payments       WHERE paid_on   = d.day), 0) AS payments_out,
		  COALESCE((SELECT SUM(amount)          FROM expenses       WHERE spent_on  = d.day), 0) AS expenses_total
		FROM days d
		ORDER BY d.day ASC`,
		from, to, from, to, from, to, from, to).
		Scan(&rows).Error
	return rows, err
}

func (r *summaryRepo) PendingCustomerBalances(ctx context.Context) ([]PartyBalance, error) {
	var rows []PartyBalance
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS party_id, c.name AS party_name,
		       COUNT(b.id) AS bill_count,
		       COALESCE(SUM(b.total - b.amount_received), 0) AS balance_due
		FROM customers c
		JOIN sales_bills b ON b.customer_id = c.id
		WHERE b.payment_status IN ('pending', 'partial')
		GROUP BY c.id, c.name
		HAVING SUM(b.total - b.amount_received) <> 0
		ORDER BY balance_due DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *summaryRepo) PendingFarmerBalances(ctx context.Context) ([]PartyBalance, error) {
	var rows []PartyBalance
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.id AS party_id, f.name AS party_name,
		       COUNT(b.id) AS bill_count,
		       COALESCE(SUM(b.balance_due), 0) AS balance_due
		FROM farmers f
		JOIN purchase_bills b ON b.farmer_id = f.id
		WHERE b.payment_status IN ('pending', 'partial')
		GROUP BY f.id, f.name
		HAVING SUM(b.balance_due) <> 0
		ORDER BY balance_due DESC`).
		Scan(&rows).Error
	return rows, err
}
