package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SalesBillFilter is bound from the query string of GET /v1/sales-bills.
type SalesBillFilter struct {
	Date       string `form:"date"`        // YYYY-MM-DD; empty = all
	CustomerID string `form:"customer_id"` // optional UUID
	Status     string `form:"status"`      // paid | partial | pending | all
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SalesBillListResponse struct {
	Data  []SalesBillResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineItemRequest struct {
	ItemID       string          `json:"item_id"        validate:"required,uuid"`
	Crates       int             `json:"crates"         validate:"min=0"`
	Kg           decimal.Decimal `json:"kg"             validate:"min=0"`
	RatePerCrate decimal.Decimal `json:"rate_per_crate" validate:"min=0"`
	RatePerKg    decimal.Decimal `json:"rate_per_kg"    validate:"min=0"`
}

type SaveSalesBillRequest struct {
	CustomerID     string            `json:"customer_id"     validate:"required,uuid"`
	BillDate       string            `json:"bill_date"       validate:"required,datetime=2006-01-02"`
	Items          []LineItemRequest `json:"items"           validate:"required,min=1,dive"`
	Discount       decimal.Decimal   `json:"discount"        validate:"min=0"`
	AmountReceived decimal.Decimal   `json:"amount_received" validate:"min=0"`
	// EmailTo: optional — when present, the document worker mails the PDF bill.
	EmailTo *string `json:"email_to" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineItemResponse struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Crates       int             `json:"crates"`
	Kg           decimal.Decimal `json:"kg"`
	RatePerCrate decimal.Decimal `json:"rate_per_crate"`
	RatePerKg    decimal.Decimal `json:"rate_per_kg"`
	Amount       decimal.Decimal `json:"amount"`
}

type SalesBillResponse struct {
	ID              string             `json:"id"`
	BillNumber      string             `json:"bill_number"`
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	BillDate        string             `json:"bill_date"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PreviousBalance decimal.Decimal    `json:"previous_balance"`
	GrandTotal      decimal.Decimal    `json:"grand_total"`
	AmountReceived  decimal.Decimal    `json:"amount_received"`
	BalanceDue      decimal.Decimal    `json:"balance_due"`
	PaymentStatus   string             `json:"payment_status"`
	CreatedAt       string             `json:"created_at"`
}
