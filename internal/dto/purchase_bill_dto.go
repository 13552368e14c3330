package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PurchaseBillFilter is bound from the query string of GET /v1/purchase-bills.
type PurchaseBillFilter struct {
	Date     string `form:"date"`
	FarmerID string `form:"farmer_id"`
	Status   string `form:"status"` // paid | partial | pending | all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseBillListResponse struct {
	Data  []PurchaseBillResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseItemRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	Crates int    `json:"crates"  validate:"min=0"`
	// CrateWeightKg overrides the item's nominal crate weight; zero means
	// "use the item default".
	CrateWeightKg  decimal.Decimal `json:"crate_weight_kg" validate:"min=0"`
	LooseKg        decimal.Decimal `json:"loose_kg"        validate:"min=0"`
	ApplyDeduction bool            `json:"apply_deduction"`
	// DeductionPct: zero with ApplyDeduction=true means "use the business
	// standard percent".
	DeductionPct decimal.Decimal `json:"deduction_pct" validate:"min=0,max=100"`
	RatePerKg    decimal.Decimal `json:"rate_per_kg"   validate:"min=0"`
}

type DeductionRequest struct {
	Label  string          `json:"label"  validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type SavePurchaseBillRequest struct {
	FarmerID        string                `json:"farmer_id"         validate:"required,uuid"`
	BillDate        string                `json:"bill_date"         validate:"required,datetime=2006-01-02"`
	Items           []PurchaseItemRequest `json:"items"             validate:"required,min=1,dive"`
	CommissionPerKg decimal.Decimal       `json:"commission_per_kg" validate:"min=0"`
	OtherDeductions []DeductionRequest    `json:"other_deductions"  validate:"dive"`
}

type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"  validate:"required"`
	PaidOn string          `json:"paid_on" validate:"required,datetime=2006-01-02"`
	Mode   string          `json:"mode"    validate:"required,oneof=cash upi neft other"`
	Note   *string         `json:"note"`
	// Confirm must be set when the payment would overpay the bill — the UI
	// prompts, the API enforces.
	Confirm bool `json:"confirm"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseItemResponse struct {
	ItemID           string          `json:"item_id"`
	ItemName         string          `json:"item_name"`
	Crates           int             `json:"crates"`
	CrateWeightKg    decimal.Decimal `json:"crate_weight_kg"`
	LooseKg          decimal.Decimal `json:"loose_kg"`
	ApplyDeduction   bool            `json:"apply_deduction"`
	DeductionPct     decimal.Decimal `json:"deduction_pct"`
	ActualWeightKg   decimal.Decimal `json:"actual_weight_kg"`
	BillableWeightKg decimal.Decimal `json:"billable_weight_kg"`
	RatePerKg        decimal.Decimal `json:"rate_per_kg"`
	Amount           decimal.Decimal `json:"amount"`
}

type DeductionResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	PaidOn string          `json:"paid_on"`
	Mode   string          `json:"mode"`
	Note   *string         `json:"note,omitempty"`
}

type PurchaseBillResponse struct {
	ID                    string                 `json:"id"`
	FarmerID              string                 `json:"farmer_id"`
	FarmerName            string                 `json:"farmer_name"`
	BillDate              string                 `json:"bill_date"`
	Items                 []PurchaseItemResponse `json:"items"`
	GrossAmount           decimal.Decimal        `json:"gross_amount"`
	WeightDeductionAmount decimal.Decimal        `json:"weight_deduction_amount"`
	Subtotal              decimal.Decimal        `json:"subtotal"`
	TotalBillableKg       decimal.Decimal        `json:"total_billable_kg"`
	CommissionPerKg       decimal.Decimal        `json:"commission_per_kg"`
	CommissionAmount      decimal.Decimal        `json:"commission_amount"`
	OtherDeductions       []DeductionResponse    `json:"other_deductions"`
	OtherDeductionsTotal  decimal.Decimal        `json:"other_deductions_total"`
	Total                 decimal.Decimal        `json:"total"`
	AmountPaid            decimal.Decimal        `json:"amount_paid"`
	BalanceDue            decimal.Decimal        `json:"balance_due"`
	PaymentStatus         string                 `json:"payment_status"`
	Payments              []PaymentResponse      `json:"payments"`
	CreatedAt             string                 `json:"created_at"`
}
