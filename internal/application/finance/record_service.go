package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
)

// RecordService handles expense and revenue bookkeeping. Every record
// it creates is mirrored into the ledger so summaries see one table.
type RecordService struct {
	expenseRepo finance.ExpenseRepository
	revenueRepo finance.RevenueRepository
	ledgerRepo  finance.FinancialTransactionRepository
}

// NewRecordService creates a new RecordService
func NewRecordService(
	expenseRepo finance.ExpenseRepository,
	revenueRepo finance.RevenueRepository,
	ledgerRepo finance.FinancialTransactionRepository,
) *RecordService {
	return &RecordService{
		expenseRepo: expenseRepo,
		revenueRepo: revenueRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// CreateExpense records an expense and its ledger entry
func (s *RecordService) CreateExpense(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(tenantID, finance.ExpenseCategory(req.Category), req.Amount, req.IncurredAt, req.Description)
	if err != nil {
		return nil, err
	}

	if req.VehicleID != nil {
		expense.AttachVehicle(*req.VehicleID)
	}
	if req.CreatedBy != nil {
		expense.CreatedBy = req.CreatedBy
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	refID := expense.ID
	entry, err := finance.NewFinancialTransaction(tenantID, finance.TransactionTypeExpense,
		expense.Amount, expense.IncurredAt, finance.ReferenceTypeExpense, &refID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListExpenses retrieves expenses with filtering and pagination
func (s *RecordService) ListExpenses(ctx context.Context, tenantID uuid.UUID, filter RecordListFilter) (*shared.Paginated[ExpenseResponse], error) {
	page, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, toRecordFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(page.Items))
	for i, expense := range page.Items {
		responses[i] = ToExpenseResponse(expense)
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// DeleteExpense removes an expense record
func (s *RecordService) DeleteExpense(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	if _, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID); err != nil {
		return err
	}
	return s.expenseRepo.DeleteForTenant(ctx, tenantID, expenseID)
}

// CreateRevenue records revenue and its ledger entry
func (s *RecordService) CreateRevenue(ctx context.Context, tenantID uuid.UUID, req CreateRevenueRequest) (*RevenueResponse, error) {
	revenue, err := finance.NewRevenue(tenantID, finance.RevenueSource(req.Source), req.Amount, req.ReceivedAt, req.Description)
	if err != nil {
		return nil, err
	}

	revenue.CustomerID = req.CustomerID
	if req.ContractID != nil {
		revenue.AttachContract(*req.ContractID)
	}
	if req.CreatedBy != nil {
		revenue.CreatedBy = req.CreatedBy
	}

	if err := s.revenueRepo.Save(ctx, revenue); err != nil {
		return nil, err
	}

	refID := revenue.ID
	entry, err := finance.NewFinancialTransaction(tenantID, finance.TransactionTypeIncome,
		revenue.Amount, revenue.ReceivedAt, finance.ReferenceTypeRevenue, &refID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToRevenueResponse(revenue)
	return &response, nil
}

// ListRevenues retrieves revenue records with filtering and pagination
func (s *RecordService) ListRevenues(ctx context.Context, tenantID uuid.UUID, filter RecordListFilter) (*shared.Paginated[RevenueResponse], error) {
	page, err := s.revenueRepo.FindAllForTenant(ctx, tenantID, toRecordFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]RevenueResponse, len(page.Items))
	for i, revenue := range page.Items {
		responses[i] = ToRevenueResponse(revenue)
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// DeleteRevenue removes a revenue record
func (s *RecordService) DeleteRevenue(ctx context.Context, tenantID, revenueID uuid.UUID) error {
	if _, err := s.revenueRepo.FindByIDForTenant(ctx, tenantID, revenueID); err != nil {
		return err
	}
	return s.revenueRepo.DeleteForTenant(ctx, tenantID, revenueID)
}

func toRecordFilter(filter RecordListFilter) finance.RecordFilter {
	domainFilter := finance.RecordFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.From = filter.From
	domainFilter.To = filter.To
	return domainFilter
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}
