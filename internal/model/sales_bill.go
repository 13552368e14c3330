package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment status values shared by sales and purchase bills.
// The status is always derived from the amounts — never set directly.
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusPending = "pending"
)

// SalesBill is a customer bill. Amount columns are all stored, but each one is
// recomputed from the line items on every create/update — the DB never holds a
// total that disagrees with its items.
//
// GrandTotal = Total + PreviousBalance, where PreviousBalance is the customer's
// outstanding balance across all OTHER unpaid/partial bills at creation time.
type SalesBill struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	BillDate   time.Time `gorm:"type:date;index;not null"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PreviousBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountReceived  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// BalanceDue may be negative (overpayment → customer credit); stored as-is.
	BalanceDue    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus string          `gorm:"type:varchar(10);index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []LineItem `gorm:"foreignKey:BillID"`
}

func (SalesBill) TableName() string { return "sales_bills" }

// LineItem is one row of a sales bill. ItemName is denormalized so renaming an
// item never rewrites billing history. Rows are immutable once saved — a bill
// edit deletes and reinserts the full set.
type LineItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemName string    `gorm:"not null"`

	Crates       int             `gorm:"not null;default:0"`
	Kg           decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	RatePerCrate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RatePerKg    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// CreatedAt drives "most recently used rate" resolution — indexed.
	CreatedAt time.Time `gorm:"index"`
}

func (LineItem) TableName() string { return "line_items" }
