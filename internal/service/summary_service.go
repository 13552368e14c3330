package service

import (
	"context"
	"errors"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"
)

type SummaryService interface {
	Daily(ctx context.Context, date string) (*dto.DailySummaryResponse, error)
	Monthly(ctx context.Context, month string) (*dto.MonthlySummaryResponse, error)
	PendingCustomers(ctx context.Context) ([]dto.PartyBalanceResponse, error)
	PendingFarmers(ctx context.Context) ([]dto.PartyBalanceResponse, error)
}

type summaryService struct {
	repo repository.SummaryRepository
}

func NewSummaryService(repo repository.SummaryRepository) SummaryService {
	return &summaryService{repo: repo}
}

func (s *summaryService) Daily(ctx context.Context, date string) (*dto.DailySummaryResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.New("invalid date, expected YYYY-MM-DD")
	}
	t, err := s.repo.DayTotals(ctx, date)
	if err != nil {
		return nil, err
	}
	resp := dayToResponse(*t)
	return &resp, nil
}

// Monthly expands a YYYY-MM month into per-day rows plus a running total.
// Days with no activity are omitted, matching the day list the repository
// produces.
func (s *summaryService) Monthly(ctx context.Context, month string) (*dto.MonthlySummaryResponse, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.New("invalid month, expected YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)
	rows, err := s.repo.MonthTotals(ctx, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	out := &dto.MonthlySummaryResponse{
		Month: month,
		Days:  make([]dto.DailySummaryResponse, 0, len(rows)),
		Total: dto.DailySummaryResponse{Date: month},
	}
	for _, row := range rows {
		day := dayToResponse(row)
		out.Days = append(out.Days, day)
		out.Total.SalesTotal = out.Total.SalesTotal.Add(day.SalesTotal)
		out.Total.SalesReceived = out.Total.SalesReceived.Add(day.SalesReceived)
		out.Total.PurchaseTotal = out.Total.PurchaseTotal.Add(day.PurchaseTotal)
		out.Total.PaymentsOut = out.Total.PaymentsOut.Add(day.PaymentsOut)
		out.Total.ExpensesTotal = out.Total.ExpensesTotal.Add(day.ExpensesTotal)
		out.Total.NetCash = out.Total.NetCash.Add(day.NetCash)
	}
	return out, nil
}

func (s *summaryService) PendingCustomers(ctx context.Context) ([]dto.PartyBalanceResponse, error) {
	rows, err := s.repo.PendingCustomerBalances(ctx)
	if err != nil {
		return nil, err
	}
	return partiesToResponse(rows), nil
}

func (s *summaryService) PendingFarmers(ctx context.Context) ([]dto.PartyBalanceResponse, error) {
	rows, err := s.repo.PendingFarmerBalances(ctx)
	if err != nil {
		return nil, err
	}
	return partiesToResponse(rows), nil
}

func dayToResponse(t repository.DayTotals) dto.DailySummaryResponse {
	netCash := t.SalesReceived.Sub(t.PaymentsOut).Sub(t.ExpensesTotal)
	return dto.DailySummaryResponse{
		Date:          t.Date,
		SalesTotal:    t.SalesTotal,
		SalesReceived: t.SalesReceived,
		PurchaseTotal: t.PurchaseTotal,
		PaymentsOut:   t.PaymentsOut,
		ExpensesTotal: t.ExpensesTotal,
		NetCash:       netCash,
	}
}

func partiesToResponse(rows []repository.PartyBalance) []dto.PartyBalanceResponse {
	out := make([]dto.PartyBalanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PartyBalanceResponse{
			PartyID:    row.PartyID.String(),
			PartyName:  row.PartyName,
			BillCount:  row.BillCount,
			BalanceDue: row.BalanceDue,
		})
	}
	return out
}
