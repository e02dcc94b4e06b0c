package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TransactionFilter) (*shared.Paginated[*finance.FinancialTransaction], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.FinancialTransaction]), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, tx *finance.FinancialTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) TotalsForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*finance.TransactionTotals, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.TransactionTotals), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.RecordFilter) (*shared.Paginated[*finance.Expense], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.Expense]), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockRevenueRepository struct {
	mock.Mock
}

func (m *MockRevenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Revenue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Revenue), args.Error(1)
}

func (m *MockRevenueRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Revenue, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Revenue), args.Error(1)
}

func (m *MockRevenueRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.RecordFilter) (*shared.Paginated[*finance.Revenue], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.Revenue]), args.Error(1)
}

func (m *MockRevenueRepository) Save(ctx context.Context, revenue *finance.Revenue) error {
	args := m.Called(ctx, revenue)
	return args.Error(0)
}

func (m *MockRevenueRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// =============================================================================
// Tests
// =============================================================================

func TestSummaryServiceForPeriod(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	newExpense := func(category finance.ExpenseCategory, amount int64) *finance.Expense {
		expense, err := finance.NewExpense(tenantID, category, decimal.NewFromInt(amount), from.AddDate(0, 0, 3), "")
		assert.NoError(t, err)
		return expense
	}
	newRevenue := func(source finance.RevenueSource, amount int64) *finance.Revenue {
		revenue, err := finance.NewRevenue(tenantID, source, decimal.NewFromInt(amount), from.AddDate(0, 0, 5), "")
		assert.NoError(t, err)
		return revenue
	}

	t.Run("folds totals and breakdowns", func(t *testing.T) {
		ledger := new(MockLedgerRepository)
		expenses := new(MockExpenseRepository)
		revenues := new(MockRevenueRepository)
		service := NewSummaryService(ledger, expenses, revenues)

		ledger.On("TotalsForPeriod", ctx, tenantID, from, to).Return(&finance.TransactionTotals{
			Income:  decimal.NewFromInt(900),
			Expense: decimal.NewFromInt(350),
		}, nil)

		expensePage := shared.NewPaginated([]*finance.Expense{
			newExpense(finance.ExpenseCategoryFuel, 150),
			newExpense(finance.ExpenseCategoryFuel, 50),
			newExpense(finance.ExpenseCategoryMaintenance, 150),
		}, 3, 1, summaryPageSize)
		expenses.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("finance.RecordFilter")).Return(&expensePage, nil)

		revenuePage := shared.NewPaginated([]*finance.Revenue{
			newRevenue(finance.RevenueSourceRental, 800),
			newRevenue(finance.RevenueSourceDeposit, 100),
		}, 2, 1, summaryPageSize)
		revenues.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("finance.RecordFilter")).Return(&revenuePage, nil)

		summary, err := service.ForPeriod(ctx, tenantID, from, to)

		assert.NoError(t, err)
		assert.True(t, summary.NetResult.Equal(decimal.NewFromInt(550)))
		assert.True(t, summary.ByCategory["fuel"].Equal(decimal.NewFromInt(200)))
		assert.True(t, summary.ByCategory["maintenance"].Equal(decimal.NewFromInt(150)))
		assert.True(t, summary.BySource["rental"].Equal(decimal.NewFromInt(800)))
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		service := NewSummaryService(new(MockLedgerRepository), new(MockExpenseRepository), new(MockRevenueRepository))

		_, err := service.ForPeriod(ctx, tenantID, to, from)

		assert.Error(t, err)
	})
}
