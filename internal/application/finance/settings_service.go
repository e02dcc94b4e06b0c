package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
)

// FinanceSettingsService manages payment methods and tax rates
type FinanceSettingsService struct {
	methodRepo finance.PaymentMethodRepository
	rateRepo   finance.TaxRateRepository
}

// NewFinanceSettingsService creates a new FinanceSettingsService
func NewFinanceSettingsService(methodRepo finance.PaymentMethodRepository, rateRepo finance.TaxRateRepository) *FinanceSettingsService {
	return &FinanceSettingsService{
		methodRepo: methodRepo,
		rateRepo:   rateRepo,
	}
}

// CreatePaymentMethod adds a payment method
func (s *FinanceSettingsService) CreatePaymentMethod(ctx context.Context, tenantID uuid.UUID, req CreatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	method, err := finance.NewPaymentMethod(tenantID, req.Label, finance.PaymentMethodKind(req.Kind))
	if err != nil {
		return nil, err
	}

	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}

	response := ToPaymentMethodResponse(method)
	return &response, nil
}

// ListPaymentMethods lists every payment method for a tenant
func (s *FinanceSettingsService) ListPaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]PaymentMethodResponse, error) {
	methods, err := s.methodRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentMethodResponse, len(methods))
	for i, method := range methods {
		responses[i] = ToPaymentMethodResponse(method)
	}

	return responses, nil
}

// SetPaymentMethodActive enables or disables a payment method
func (s *FinanceSettingsService) SetPaymentMethodActive(ctx context.Context, tenantID, methodID uuid.UUID, active bool) error {
	method, err := s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID)
	if err != nil {
		return err
	}

	if active {
		method.Activate()
	} else {
		method.Deactivate()
	}

	return s.methodRepo.Save(ctx, method)
}

// DeletePaymentMethod removes a payment method
func (s *FinanceSettingsService) DeletePaymentMethod(ctx context.Context, tenantID, methodID uuid.UUID) error {
	if _, err := s.methodRepo.FindByIDForTenant(ctx, tenantID, methodID); err != nil {
		return err
	}
	return s.methodRepo.DeleteForTenant(ctx, tenantID, methodID)
}

// CreateTaxRate adds a tax rate, clearing the previous default when the
// new one is flagged default
func (s *FinanceSettingsService) CreateTaxRate(ctx context.Context, tenantID uuid.UUID, req CreateTaxRateRequest) (*TaxRateResponse, error) {
	rate, err := finance.NewTaxRate(tenantID, req.Name, req.Percent)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.clearDefault(ctx, tenantID); err != nil {
			return nil, err
		}
		rate.MarkDefault()
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToTaxRateResponse(rate)
	return &response, nil
}

// ListTaxRates lists every tax rate for a tenant
func (s *FinanceSettingsService) ListTaxRates(ctx context.Context, tenantID uuid.UUID) ([]TaxRateResponse, error) {
	rates, err := s.rateRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]TaxRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToTaxRateResponse(rate)
	}

	return responses, nil
}

// SetDefaultTaxRate makes the given rate the tenant default
func (s *FinanceSettingsService) SetDefaultTaxRate(ctx context.Context, tenantID, rateID uuid.UUID) error {
	rate, err := s.rateRepo.FindByIDForTenant(ctx, tenantID, rateID)
	if err != nil {
		return err
	}

	if err := s.clearDefault(ctx, tenantID); err != nil {
		return err
	}

	rate.MarkDefault()
	return s.rateRepo.Save(ctx, rate)
}

// DeleteTaxRate removes a tax rate
func (s *FinanceSettingsService) DeleteTaxRate(ctx context.Context, tenantID, rateID uuid.UUID) error {
	if _, err := s.rateRepo.FindByIDForTenant(ctx, tenantID, rateID); err != nil {
		return err
	}
	return s.rateRepo.DeleteForTenant(ctx, tenantID, rateID)
}

func (s *FinanceSettingsService) clearDefault(ctx context.Context, tenantID uuid.UUID) error {
	current, err := s.rateRepo.FindDefaultForTenant(ctx, tenantID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	current.ClearDefault()
	return s.rateRepo.Save(ctx, current)
}
