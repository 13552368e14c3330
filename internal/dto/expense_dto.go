package dto

import "github.com/shopspring/decimal"

type SaveExpenseRequest struct {
	SpentOn  string          `json:"spent_on" validate:"required,datetime=2006-01-02"`
	Category string          `json:"category" validate:"required,oneof=ice fuel labour transport rent misc"`
	Label    string          `json:"label"    validate:"required"`
	Amount   decimal.Decimal `json:"amount"   validate:"required"`
	Note     *string         `json:"note"`
}

type ExpenseResponse struct {
	ID       string          `json:"id"`
	SpentOn  string          `json:"spent_on"`
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Note     *string         `json:"note,omitempty"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
type ExpenseFilter struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
}
