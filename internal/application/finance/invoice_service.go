package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice business operations. Issuing and
// settling an invoice writes matching entries into the ledger.
type InvoiceService struct {
	invoiceRepo  finance.InvoiceRepository
	taxRateRepo  finance.TaxRateRepository
	ledgerRepo   finance.FinancialTransactionRepository
	settingsRepo org.SettingsRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo finance.InvoiceRepository,
	taxRateRepo finance.TaxRateRepository,
	ledgerRepo finance.FinancialTransactionRepository,
	settingsRepo org.SettingsRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		taxRateRepo:  taxRateRepo,
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
	}
}

// Create creates a draft invoice. The tax percentage is resolved from
// the request, an explicit tax rate, or the tenant default, in that
// order.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	taxPercent, err := s.resolveTaxPercent(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	number, err := s.nextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	invoice, err := finance.NewInvoice(tenantID, number, req.CustomerID, req.IssueDate, req.DueDate, req.Subtotal, taxPercent)
	if err != nil {
		return nil, err
	}

	if req.ContractID != nil {
		invoice.AttachContract(*req.ContractID)
	}
	invoice.Notes = req.Notes
	if req.CreatedBy != nil {
		invoice.CreatedBy = req.CreatedBy
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

func (s *InvoiceService) resolveTaxPercent(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (decimal.Decimal, error) {
	if req.TaxPercent != nil {
		return *req.TaxPercent, nil
	}

	if req.TaxRateID != nil {
		rate, err := s.taxRateRepo.FindByIDForTenant(ctx, tenantID, *req.TaxRateID)
		if err != nil {
			return decimal.Zero, err
		}
		return rate.Percent, nil
	}

	rate, err := s.taxRateRepo.FindDefaultForTenant(ctx, tenantID)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return rate.Percent, nil
}

func (s *InvoiceService) nextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	settings, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}

	n := settings.NextInvoiceNumber()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%06d", settings.InvoicePrefix, n), nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := finance.InvoiceFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.CustomerID = filter.CustomerID
	if filter.Status != "" {
		status := finance.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}
	domainFilter.From = filter.From
	domainFilter.To = filter.To

	page, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(page.Items))
	for i, invoice := range page.Items {
		responses[i] = ToInvoiceResponse(invoice)
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Issue moves a draft invoice to issued
func (s *InvoiceService) Issue(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Issue(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// MarkPaid settles an issued invoice and records the income in the ledger
func (s *InvoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID, paymentMethodID *uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	refID := invoice.ID
	entry, err := finance.NewFinancialTransaction(tenantID, finance.TransactionTypeIncome,
		invoice.Total, invoice.UpdatedAt, finance.ReferenceTypeInvoice, &refID,
		fmt.Sprintf("Invoice %s paid", invoice.Number))
	if err != nil {
		return nil, err
	}
	if paymentMethodID != nil {
		entry.SetPaymentMethod(*paymentMethodID)
	}

	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Void voids a draft or issued invoice
func (s *InvoiceService) Void(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}

	if err := invoice.Void(); err != nil {
		return err
	}

	return s.invoiceRepo.Save(ctx, invoice)
}
