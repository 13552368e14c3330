package service

import (
	"context"
	"testing"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummaryRepo struct {
	day       repository.DayTotals
	month     []repository.DayTotals
	lastRange [2]string
	customers []repository.PartyBalance
	farmers   []repository.PartyBalance
}

var _ repository.SummaryRepository = (*stubSummaryRepo)(nil)

func (s *stubSummaryRepo) DayTotals(ctx context.Context, date string) (*repository.DayTotals, error) {
	t := s.day
	t.Date = date
	return &t, nil
}

func (s *stubSummaryRepo) MonthTotals(ctx context.Context, from, to string) ([]repository.DayTotals, error) {
	s.lastRange = [2]string{from, to}
	return s.month, nil
}

func (s *stubSummaryRepo) PendingCustomerBalances(ctx context.Context) ([]repository.PartyBalance, error) {
	return s.customers, nil
}

func (s *stubSummaryRepo) PendingFarmerBalances(ctx context.Context) ([]repository.PartyBalance, error) {
	return s.farmers, nil
}

func dayTotals(salesTotal, salesReceived, purchaseTotal, paymentsOut, expensesTotal string) repository.DayTotals {
	return repository.DayTotals{
		SalesTotal:    decimal.RequireFromString(salesTotal),
		SalesReceived: decimal.RequireFromString(salesReceived),
		PurchaseTotal: decimal.RequireFromString(purchaseTotal),
		PaymentsOut:   decimal.RequireFromString(paymentsOut),
		ExpensesTotal: decimal.RequireFromString(expensesTotal),
	}
}

func TestSummaryDaily(t *testing.T) {
	repo := &stubSummaryRepo{day: dayTotals("25000", "18000", "16000", "10000", "1500")}
	svc := NewSummaryService(repo)

	res, err := svc.Daily(context.Background(), "2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", res.Date)
	// net cash = received − payments out − expenses
	assert.Equal(t, "6500", res.NetCash.String())

	_, err = svc.Daily(context.Background(), "2025-3-14")
	assert.ErrorContains(t, err, "invalid date")
}

func TestSummaryMonthly(t *testing.T) {
	d1 := dayTotals("10000", "8000", "6000", "5000", "500")
	d1.Date = "2025-02-03"
	d2 := dayTotals("20000", "15000", "12000", "9000", "1000")
	d2.Date = "2025-02-17"

	repo := &stubSummaryRepo{month: []repository.DayTotals{d1, d2}}
	svc := NewSummaryService(repo)

	res, err := svc.Monthly(context.Background(), "2025-02")
	require.NoError(t, err)

	// February bounds, leap-year aware.
	assert.Equal(t, [2]string{"2025-02-01", "2025-02-28"}, repo.lastRange)

	assert.Equal(t, "2025-02", res.Month)
	require.Len(t, res.Days, 2)
	assert.Equal(t, "2500", res.Days[0].NetCash.String())
	assert.Equal(t, "5000", res.Days[1].NetCash.String())

	assert.Equal(t, "30000", res.Total.SalesTotal.String())
	assert.Equal(t, "23000", res.Total.SalesReceived.String())
	assert.Equal(t, "18000", res.Total.PurchaseTotal.String())
	assert.Equal(t, "7500", res.Total.NetCash.String())
}

func TestSummaryMonthly_LeapFebruary(t *testing.T) {
	repo := &stubSummaryRepo{}
	svc := NewSummaryService(repo)

	_, err := svc.Monthly(context.Background(), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"2024-02-01", "2024-02-29"}, repo.lastRange)

	_, err = svc.Monthly(context.Background(), "2024-2")
	assert.ErrorContains(t, err, "invalid month")
}

func TestSummaryPendingParties(t *testing.T) {
	customerID, farmerID := uuid.New(), uuid.New()
	repo := &stubSummaryRepo{
		customers: []repository.PartyBalance{
			{PartyID: customerID, PartyName: "Hotel Blue Bay", BillCount: 3,
				BalanceDue: decimal.RequireFromString("4200")},
		},
		farmers: []repository.PartyBalance{
			{PartyID: farmerID, PartyName: "Ramesh", BillCount: 1,
				BalanceDue: decimal.RequireFromString("6791.25")},
		},
	}
	svc := NewSummaryService(repo)

	customers, err := svc.PendingCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, customerID.String(), customers[0].PartyID)
	assert.Equal(t, 3, customers[0].BillCount)

	farmers, err := svc.PendingFarmers(context.Background())
	require.NoError(t, err)
	require.Len(t, farmers, 1)
	assert.Equal(t, "6791.25", farmers[0].BalanceDue.String())
}
