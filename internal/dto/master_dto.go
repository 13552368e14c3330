package dto

import "github.com/shopspring/decimal"

// ─── Items ───────────────────────────────────────────────────────────────────

type SaveItemRequest struct {
	Name          string          `json:"name"            validate:"required,min=2"`
	CrateWeightKg decimal.Decimal `json:"crate_weight_kg" validate:"min=0"`
}

type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CrateWeightKg decimal.Decimal `json:"crate_weight_kg"`
	Active        bool            `json:"active"`
}

// ─── Customers ───────────────────────────────────────────────────────────────

type SaveCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=2"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}

// ─── Farmers ─────────────────────────────────────────────────────────────────

type SaveFarmerRequest struct {
	Name    string  `json:"name"    validate:"required,min=2"`
	Phone   *string `json:"phone"`
	Village *string `json:"village"`
}

type FarmerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Village *string `json:"village,omitempty"`
	Active  bool    `json:"active"`
}

// ─── Rates ───────────────────────────────────────────────────────────────────

// RateResponse carries the most recently used rates for one item, for
// pre-filling new bills. Zero rates with Found=false mean no history — the
// caller must require explicit entry before allowing save.
type RateResponse struct {
	ItemID       string          `json:"item_id"`
	RatePerCrate decimal.Decimal `json:"rate_per_crate"`
	RatePerKg    decimal.Decimal `json:"rate_per_kg"`
	Found        bool            `json:"found"`
}
