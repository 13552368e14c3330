package billing

import (
	"testing"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeSalesBill_CratesOnly(t *testing.T) {
	res, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Crates: 2, RatePerCrate: dec("500")},
		},
		AmountReceived: dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", res.Subtotal.String())
	assert.Equal(t, "1000", res.Total.String())
	assert.Equal(t, "1000", res.GrandTotal.String())
	assert.Equal(t, "0", res.BalanceDue.String())
	assert.Equal(t, model.StatusPaid, res.PaymentStatus)
}

func TestComputeSalesBill_MixedQuantities(t *testing.T) {
	res, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Katla", Crates: 3, Kg: dec("12.5"),
				RatePerCrate: dec("400"), RatePerKg: dec("80")},
		},
	})
	require.NoError(t, err)
	// 3×400 + 12.5×80 = 1200 + 1000
	assert.Equal(t, "2200", res.Subtotal.String())
	assert.Equal(t, model.StatusPending, res.PaymentStatus)
	assert.Equal(t, "2200", res.BalanceDue.String())
}

func TestComputeSalesBill_DiscountAndCarryForward(t *testing.T) {
	res, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Crates: 2, RatePerCrate: dec("500")},
		},
		Discount:        dec("100"),
		PreviousBalance: dec("200"),
		AmountReceived:  dec("600"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", res.Subtotal.String())
	assert.Equal(t, "900", res.Total.String())
	assert.Equal(t, "1100", res.GrandTotal.String())
	assert.Equal(t, "500", res.BalanceDue.String())
	assert.Equal(t, model.StatusPartial, res.PaymentStatus)
}

func TestComputeSalesBill_DiscountLargerThanSubtotal(t *testing.T) {
	// Deliberately not blocked: a goodwill writedown can push the total negative.
	res, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Prawns", Kg: dec("2"), RatePerKg: dec("100")},
		},
		Discount: dec("250"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-50", res.Total.String())
}

func TestComputeSalesBill_Overpayment(t *testing.T) {
	res, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Crates: 1, RatePerCrate: dec("500")},
		},
		AmountReceived: dec("700"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-200", res.BalanceDue.String())
	assert.Equal(t, model.StatusPaid, res.PaymentStatus)
}

func TestComputeSalesBill_NoLines(t *testing.T) {
	_, err := ComputeSalesBill(SalesDraft{})
	assert.ErrorIs(t, err, ErrNoLines)
}

func TestComputeSalesBill_AllZeroQuantities(t *testing.T) {
	_, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu"},
			{ItemID: uuid.New(), ItemName: "Katla"},
		},
	})
	assert.ErrorIs(t, err, ErrNoQuantity)
}

func TestComputeSalesBill_ZeroRateOnNonZeroQuantity(t *testing.T) {
	_, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Crates: 2},
		},
	})
	assert.ErrorContains(t, err, "crate rate not set")

	_, err = ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Kg: dec("5")},
		},
	})
	assert.ErrorContains(t, err, "kg rate not set")
}

func TestComputeSalesBill_NegativeInputsRejected(t *testing.T) {
	_, err := ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Crates: -1, RatePerCrate: dec("500")},
		},
	})
	assert.ErrorContains(t, err, "negative crate count")

	_, err = ComputeSalesBill(SalesDraft{
		Lines: []SalesLine{
			{ItemID: uuid.New(), ItemName: "Rohu", Kg: dec("-2"), RatePerKg: dec("80")},
		},
	})
	assert.ErrorContains(t, err, "negative weight")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, model.StatusPaid, StatusFor(dec("100"), dec("100")))
	assert.Equal(t, model.StatusPaid, StatusFor(dec("100"), dec("150")))
	assert.Equal(t, model.StatusPartial, StatusFor(dec("100"), dec("50")))
	assert.Equal(t, model.StatusPending, StatusFor(dec("100"), dec("0")))
	// Zero-total bill with nothing received counts as paid, not pending.
	assert.Equal(t, model.StatusPaid, StatusFor(dec("0"), dec("0")))
	// Negative due (credit bill) is satisfied by zero received.
	assert.Equal(t, model.StatusPaid, StatusFor(dec("-50"), dec("0")))
}
