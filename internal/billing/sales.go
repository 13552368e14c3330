// Package billing holds the bill computation rules. Every function here is a
// pure function over its inputs — no clock, no store, no state between calls.
// The service layer owns persistence and feeds these with fully resolved data.
package billing

import (
	"errors"
	"fmt"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoLines blocks finalization of a bill with an empty item list.
	ErrNoLines = errors.New("bill has no line items")
	// ErrNoQuantity blocks a bill whose lines are all zero-quantity.
	ErrNoQuantity = errors.New("bill has no line item with a non-zero quantity")
)

// SalesLine is one draft row of a sales bill, as entered by the user.
type SalesLine struct {
	ItemID       uuid.UUID
	ItemName     string
	Crates       int
	Kg           decimal.Decimal
	RatePerCrate decimal.Decimal
	RatePerKg    decimal.Decimal
}

// ComputedSalesLine is a SalesLine with its amount resolved.
type ComputedSalesLine struct {
	SalesLine
	Amount decimal.Decimal
}

// SalesDraft carries everything ComputeSalesBill needs. PreviousBalance is the
// customer's outstanding balance across all OTHER unpaid/partial bills — the
// caller must exclude the bill being edited when it computes this.
type SalesDraft struct {
	Lines           []SalesLine
	Discount        decimal.Decimal
	PreviousBalance decimal.Decimal
	AmountReceived  decimal.Decimal
}

// SalesResult is the fully computed bill, ready to persist.
type SalesResult struct {
	Lines           []ComputedSalesLine
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	PreviousBalance decimal.Decimal
	GrandTotal      decimal.Decimal
	AmountReceived  decimal.Decimal
	BalanceDue      decimal.Decimal
	PaymentStatus   string
}

// ComputeSalesBill turns a draft into a complete bill:
//
//	amount     = crates×ratePerCrate + kg×ratePerKg
//	subtotal   = Σamount
//	total      = subtotal − discount        (may go negative — accepted)
//	grandTotal = total + previousBalance
//	balanceDue = grandTotal − amountReceived (may go negative = credit)
//
// A rate of exactly zero on a line with non-zero quantity means "rate not set"
// and blocks finalization. Discount is deliberately NOT validated against
// subtotal.
func ComputeSalesBill(d SalesDraft) (*SalesResult, error) {
	if len(d.Lines) == 0 {
		return nil, ErrNoLines
	}

	res := &SalesResult{
		Discount:        d.Discount,
		PreviousBalance: d.PreviousBalance,
		AmountReceived:  d.AmountReceived,
		Subtotal:        decimal.Zero,
	}

	anyQuantity := false
	for i, ln := range d.Lines {
		if err := validateSalesLine(i, ln); err != nil {
			return nil, err
		}
		if ln.Crates > 0 || ln.Kg.IsPositive() {
			anyQuantity = true
		}
		amount := decimal.NewFromInt(int64(ln.Crates)).Mul(ln.RatePerCrate).
			Add(ln.Kg.Mul(ln.RatePerKg))
		res.Lines = append(res.Lines, ComputedSalesLine{SalesLine: ln, Amount: amount})
		res.Subtotal = res.Subtotal.Add(amount)
	}
	if !anyQuantity {
		return nil, ErrNoQuantity
	}

	res.Total = res.Subtotal.Sub(d.Discount)
	res.GrandTotal = res.Total.Add(d.PreviousBalance)
	res.BalanceDue = res.GrandTotal.Sub(d.AmountReceived)
	res.PaymentStatus = StatusFor(res.GrandTotal, d.AmountReceived)
	return res, nil
}

func validateSalesLine(i int, ln SalesLine) error {
	if ln.Crates < 0 {
		return fmt.Errorf("line %d: negative crate count", i+1)
	}
	if ln.Kg.IsNegative() {
		return fmt.Errorf("line %d: negative weight", i+1)
	}
	if ln.RatePerCrate.IsNegative() || ln.RatePerKg.IsNegative() {
		return fmt.Errorf("line %d: negative rate", i+1)
	}
	if ln.Crates > 0 && ln.RatePerCrate.IsZero() {
		return fmt.Errorf("line %d (%s): crate rate not set", i+1, ln.ItemName)
	}
	if ln.Kg.IsPositive() && ln.RatePerKg.IsZero() {
		return fmt.Errorf("line %d (%s): kg rate not set", i+1, ln.ItemName)
	}
	return nil
}

// StatusFor derives the three-way payment status. It is the ONLY place the
// rule lives: paid iff received ≥ due, partial iff 0 < received < due,
// pending otherwise.
func StatusFor(due, received decimal.Decimal) string {
	switch {
	case received.GreaterThanOrEqual(due):
		return model.StatusPaid
	case received.IsPositive():
		return model.StatusPartial
	default:
		return model.StatusPending
	}
}
