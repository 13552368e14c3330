package dto

import "github.com/shopspring/decimal"

// UpsertSaleRequest writes one ledger row by natural key. Repeating the call
// for the same (customer, item, date) updates the row in place; zero for both
// quantities deletes it.
type UpsertSaleRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	ItemID     string          `json:"item_id"     validate:"required,uuid"`
	SaleDate   string          `json:"sale_date"   validate:"required,datetime=2006-01-02"`
	Crates     int             `json:"crates"      validate:"min=0"`
	Kg         decimal.Decimal `json:"kg"          validate:"min=0"`
}

type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	SaleDate     string          `json:"sale_date"`
	Crates       int             `json:"crates"`
	Kg           decimal.Decimal `json:"kg"`
	// Deleted is set when a zero/zero upsert removed the row.
	Deleted bool `json:"deleted,omitempty"`
}

type ReconcileRequest struct {
	SaleDate string `json:"sale_date" validate:"required,datetime=2006-01-02"`
}

type ReconcileResponse struct {
	SaleDate string `json:"sale_date"`
	Deleted  int    `json:"deleted"`
}
