package dto

import "github.com/shopspring/decimal"

// DailySummaryResponse is the day's derived money flow. NetCash is
// sales_received − payments_out − expenses — the cash that actually moved,
// not the billed value.
type DailySummaryResponse struct {
	Date          string          `json:"date"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
	SalesReceived decimal.Decimal `json:"sales_received"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	PaymentsOut   decimal.Decimal `json:"payments_out"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	NetCash       decimal.Decimal `json:"net_cash"`
}

type MonthlySummaryResponse struct {
	Month string                 `json:"month"` // YYYY-MM
	Days  []DailySummaryResponse `json:"days"`
	Total DailySummaryResponse   `json:"total"`
}

type PartyBalanceResponse struct {
	PartyID    string          `json:"party_id"`
	PartyName  string          `json:"party_name"`
	BillCount  int             `json:"bill_count"`
	BalanceDue decimal.Decimal `json:"balance_due"`
}

// DocumentResponse describes the rendered PDF for a sales bill.
type DocumentResponse struct {
	ID          string  `json:"id"`
	SalesBillID string  `json:"sales_bill_id"`
	Status      string  `json:"status"`
	PDFUrl      *string `json:"pdf_url,omitempty"`
	EmailedTo   *string `json:"emailed_to,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
