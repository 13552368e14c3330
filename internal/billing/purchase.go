package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PurchaseLine is one draft row of a farmer purchase bill.
type PurchaseLine struct {
	ItemID   uuid.UUID
	ItemName string
	Crates   int
	// CrateWeightKg is the declared weight of one crate for this line
	// (per-item override of the business default).
	CrateWeightKg  decimal.Decimal
	LooseKg        decimal.Decimal
	ApplyDeduction bool
	DeductionPct   decimal.Decimal
	RatePerKg      decimal.Decimal
}

// ComputedPurchaseLine is a PurchaseLine with weights and amount resolved.
type ComputedPurchaseLine struct {
	PurchaseLine
	ActualWeightKg   decimal.Decimal
	BillableWeightKg decimal.Decimal
	Amount           decimal.Decimal
}

// NamedAmount is an ad-hoc labelled deduction (ice, transport, labour, …).
type NamedAmount struct {
	Label  string
	Amount decimal.Decimal
}

// PurchaseDraft carries everything ComputePurchaseBill needs.
type PurchaseDraft struct {
	Lines           []PurchaseLine
	CommissionPerKg decimal.Decimal
	OtherDeductions []NamedAmount
}

// PurchaseResult is the computed bill before payments are applied. The caller
// settles BalanceDue/PaymentStatus against the payment history via Settle.
type PurchaseResult struct {
	Lines                 []ComputedPurchaseLine
	GrossAmount           decimal.Decimal
	WeightDeductionAmount decimal.Decimal
	Subtotal              decimal.Decimal
	TotalBillableKg       decimal.Decimal
	CommissionPerKg       decimal.Decimal
	CommissionAmount      decimal.Decimal
	OtherDeductionsTotal  decimal.Decimal
	Total                 decimal.Decimal
}

// ComputePurchaseBill applies the weight-deduction and commission math:
//
//	actual   = crates×crateWeight + looseKg
//	billable = applyDeduction ? actual×(1−pct/100) : actual
//	gross    = Σ(actual×rate)
//	subtotal = Σ(billable×rate)          weightDeduction = gross − subtotal
//	commission = Σbillable × commissionPerKg   (ADDED — the agent's cut sits
//	                                            on top of the farmer's bill)
//	total    = subtotal + commission − ΣotherDeductions
//
// A zero rate on a line with non-zero weight blocks finalization.
func ComputePurchaseBill(d PurchaseDraft) (*PurchaseResult, error) {
	if len(d.Lines) == 0 {
		return nil, ErrNoLines
	}

	res := &PurchaseResult{
		CommissionPerKg:      d.CommissionPerKg,
		GrossAmount:          decimal.Zero,
		Subtotal:             decimal.Zero,
		TotalBillableKg:      decimal.Zero,
		OtherDeductionsTotal: decimal.Zero,
	}

	anyWeight := false
	for i, ln := range d.Lines {
		if err := validatePurchaseLine(i, ln); err != nil {
			return nil, err
		}

		actual := decimal.NewFromInt(int64(ln.Crates)).Mul(ln.CrateWeightKg).Add(ln.LooseKg)
		billable := actual
		if ln.ApplyDeduction {
			billable = actual.Mul(hundred.Sub(ln.DeductionPct)).Div(hundred)
		}
		if actual.IsPositive() {
			anyWeight = true
			if ln.RatePerKg.IsZero() {
				return nil, fmt.Errorf("line %d (%s): kg rate not set", i+1, ln.ItemName)
			}
		}

		amount := billable.Mul(ln.RatePerKg)
		res.Lines = append(res.Lines, ComputedPurchaseLine{
			PurchaseLine:     ln,
			ActualWeightKg:   actual,
			BillableWeightKg: billable,
			Amount:           amount,
		})
		res.GrossAmount = res.GrossAmount.Add(actual.Mul(ln.RatePerKg))
		res.Subtotal = res.Subtotal.Add(amount)
		res.TotalBillableKg = res.TotalBillableKg.Add(billable)
	}
	if !anyWeight {
		return nil, ErrNoQuantity
	}

	res.WeightDeductionAmount = res.GrossAmount.Sub(res.Subtotal)
	res.CommissionAmount = res.TotalBillableKg.Mul(d.CommissionPerKg)
	for _, ded := range d.OtherDeductions {
		res.OtherDeductionsTotal = res.OtherDeductionsTotal.Add(ded.Amount)
	}
	res.Total = res.Subtotal.Add(res.CommissionAmount).Sub(res.OtherDeductionsTotal)
	return res, nil
}

func validatePurchaseLine(i int, ln PurchaseLine) error {
	if ln.Crates < 0 {
		return fmt.Errorf("line %d: negative crate count", i+1)
	}
	if ln.LooseKg.IsNegative() || ln.CrateWeightKg.IsNegative() {
		return fmt.Errorf("line %d: negative weight", i+1)
	}
	if ln.RatePerKg.IsNegative() {
		return fmt.Errorf("line %d: negative rate", i+1)
	}
	if ln.DeductionPct.IsNegative() || ln.DeductionPct.GreaterThan(hundred) {
		return fmt.Errorf("line %d: deduction percent out of range", i+1)
	}
	return nil
}

// Settle recomputes the running balance after payments. Overpayment yields a
// negative balance — surfaced, never clamped.
func Settle(total, amountPaid decimal.Decimal) (balanceDue decimal.Decimal, status string) {
	return total.Sub(amountPaid), StatusFor(total, amountPaid)
}
