package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SummaryService computes financial summaries on demand. Summaries are
// never persisted, each request folds over the period's records.
type SummaryService struct {
	ledgerRepo  finance.FinancialTransactionRepository
	expenseRepo finance.ExpenseRepository
	revenueRepo finance.RevenueRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	ledgerRepo finance.FinancialTransactionRepository,
	expenseRepo finance.ExpenseRepository,
	revenueRepo finance.RevenueRepository,
) *SummaryService {
	return &SummaryService{
		ledgerRepo:  ledgerRepo,
		expenseRepo: expenseRepo,
		revenueRepo: revenueRepo,
	}
}

// ForPeriod computes the summary for [from, to]
func (s *SummaryService) ForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*FinancialSummaryResponse, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede its start")
	}

	totals, err := s.ledgerRepo.TotalsForPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.expenseBreakdown(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	bySource, err := s.revenueBreakdown(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	return &FinancialSummaryResponse{
		From:         from,
		To:           to,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		NetResult:    totals.Income.Sub(totals.Expense),
		ByCategory:   byCategory,
		BySource:     bySource,
	}, nil
}

// CurrentMonth computes the summary for the month containing now
func (s *SummaryService) CurrentMonth(ctx context.Context, tenantID uuid.UUID, now time.Time) (*FinancialSummaryResponse, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.ForPeriod(ctx, tenantID, from, to)
}

func (s *SummaryService) expenseBreakdown(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	breakdown := map[string]decimal.Decimal{}

	filter := finance.RecordFilter{Filter: shared.DefaultFilter(), From: &from, To: &to}
	filter.PageSize = summaryPageSize

	for page := 1; ; page++ {
		filter.Page = page
		result, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}

		for _, expense := range result.Items {
			key := string(expense.Category)
			breakdown[key] = breakdown[key].Add(expense.Amount)
		}

		if len(result.Items) < filter.PageSize {
			break
		}
	}

	return breakdown, nil
}

func (s *SummaryService) revenueBreakdown(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	breakdown := map[string]decimal.Decimal{}

	filter := finance.RecordFilter{Filter: shared.DefaultFilter(), From: &from, To: &to}
	filter.PageSize = summaryPageSize

	for page := 1; ; page++ {
		filter.Page = page
		result, err := s.revenueRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}

		for _, revenue := range result.Items {
			key := string(revenue.Source)
			breakdown[key] = breakdown[key].Add(revenue.Amount)
		}

		if len(result.Items) < filter.PageSize {
			break
		}
	}

	return breakdown, nil
}

const summaryPageSize = 500
