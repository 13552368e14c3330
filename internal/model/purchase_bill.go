package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment modes accepted on purchase bill payments.
const (
	PayModeCash  = "cash"
	PayModeUPI   = "upi"
	PayModeNEFT  = "neft"
	PayModeOther = "other"
)

// PurchaseBill is a farmer bill. Unlike sales bills there is no cross-bill
// carry-forward: PaymentStatus compares AmountPaid against Total only.
// AmountPaid is the running sum of the bill's Payment records.
type PurchaseBill struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmerID uuid.UUID `gorm:"type:uuid;index;not null"`
	BillDate time.Time `gorm:"type:date;index;not null"`

	GrossAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WeightDeductionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalBillableKg       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	// CommissionPerKg is ADDED on top of the farmer's payable — the trading
	// agent's cut, not a deduction.
	CommissionPerKg      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	CommissionAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDeductionsTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BalanceDue           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus        string          `gorm:"type:varchar(10);index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Farmer     *Farmer             `gorm:"foreignKey:FarmerID"`
	Items      []PurchaseBillItem  `gorm:"foreignKey:BillID"`
	Deductions []PurchaseDeduction `gorm:"foreignKey:BillID"`
	Payments   []Payment           `gorm:"foreignKey:BillID"`
}

func (PurchaseBill) TableName() string { return "purchase_bills" }

// PurchaseBillItem records both the actual and the billable weight so the
// shrinkage math stays auditable after the fact.
//
//	ActualWeightKg   = Crates×CrateWeightKg + LooseKg
//	BillableWeightKg = ApplyDeduction ? ActualWeightKg×(1−DeductionPct/100) : ActualWeightKg
type PurchaseBillItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemName string    `gorm:"not null"`

	Crates        int             `gorm:"not null;default:0"`
	CrateWeightKg decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	LooseKg       decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`

	ApplyDeduction   bool            `gorm:"not null;default:false"`
	DeductionPct     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ActualWeightKg   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	BillableWeightKg decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	RatePerKg decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `gorm:"index"`
}

func (PurchaseBillItem) TableName() string { return "purchase_bill_items" }

// PurchaseDeduction is a named ad-hoc charge subtracted from a purchase bill
// (ice, transport, labour, …). Structured on purpose — never encoded into a
// free-text notes field.
type PurchaseDeduction struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Label  string          `gorm:"not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (PurchaseDeduction) TableName() string { return "purchase_deductions" }

// Payment is an immutable record of money handed to a farmer against one bill.
// No Update/Delete — corrections are made with a compensating entry.
type Payment struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID uuid.UUID       `gorm:"type:uuid;index;not null"`
	PaidOn time.Time       `gorm:"type:date;not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Mode: cash | upi | neft | other
	Mode      string `gorm:"type:varchar(10);not null"`
	Note      *string
	CreatedAt time.Time
}

func (Payment) TableName() string { return "payments" }
