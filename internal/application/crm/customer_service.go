package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer profile business operations
type CustomerService struct {
	customerRepo crm.CustomerProfileRepository
	contractRepo crm.ContractRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerProfileRepository, contractRepo crm.ContractRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		contractRepo: contractRepo,
	}
}

// Create creates a new customer profile
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	// Check if code already exists
	exists, err := s.customerRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	// Check if email already exists (if provided)
	if req.Email != "" {
		exists, err = s.customerRepo.ExistsByEmail(ctx, tenantID, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
		}
	}

	customer, err := crm.NewCustomerProfile(tenantID, req.Code, req.FullName)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Email != "" {
		if err := customer.SetContact(req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if req.LicenseNumber != "" {
		if err := customer.SetLicenseNumber(req.LicenseNumber); err != nil {
			return nil, err
		}
	}

	if req.Address != "" || req.City != "" || req.PostalCode != "" {
		if err := customer.SetAddress(req.Address, req.City, req.PostalCode); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if req.Attributes != "" {
		if err := customer.SetAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if req.CreatedBy != nil {
		customer.CreatedBy = req.CreatedBy
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}

	return responses, total, nil
}

// Update updates a customer profile
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if err := customer.Update(*req.FullName); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil || req.Email != nil {
		phone := customer.Phone
		email := customer.Email
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := customer.SetContact(phone, email); err != nil {
			return nil, err
		}
	}

	if req.LicenseNumber != nil {
		if err := customer.SetLicenseNumber(*req.LicenseNumber); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil || req.PostalCode != nil {
		address := customer.Address
		city := customer.City
		postalCode := customer.PostalCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		if err := customer.SetAddress(address, city, postalCode); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if req.Attributes != nil {
		if err := customer.SetAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate activates a customer profile
func (s *CustomerService) Activate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}

	if err := customer.Activate(); err != nil {
		return err
	}

	return s.customerRepo.Save(ctx, customer)
}

// Deactivate deactivates a customer profile
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return err
	}

	if err := customer.Deactivate(); err != nil {
		return err
	}

	return s.customerRepo.Save(ctx, customer)
}

// Statistics aggregates customer counts and contract value for a tenant.
// The repository exposes no sum query, so contract amounts are folded in
// memory page by page.
func (s *CustomerService) Statistics(ctx context.Context, tenantID uuid.UUID) (*CustomerStatisticsResponse, error) {
	active, err := s.customerRepo.CountByStatus(ctx, tenantID, crm.CustomerStatusActive)
	if err != nil {
		return nil, err
	}

	inactive, err := s.customerRepo.CountByStatus(ctx, tenantID, crm.CustomerStatusInactive)
	if err != nil {
		return nil, err
	}

	contractedAmount := decimal.Zero
	byContractStatus := map[string]decimal.Decimal{}

	filter := crm.ContractFilter{Filter: shared.DefaultFilter()}
	filter.PageSize = statisticsPageSize

	for page := 1; ; page++ {
		filter.Page = page
		contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}

		for _, contract := range contracts {
			contractedAmount = contractedAmount.Add(contract.TotalAmount)
			key := string(contract.Status)
			byContractStatus[key] = byContractStatus[key].Add(contract.TotalAmount)
		}

		if len(contracts) < filter.PageSize {
			break
		}
	}

	return &CustomerStatisticsResponse{
		ActiveCustomers:   active,
		InactiveCustomers: inactive,
		TotalCustomers:    active + inactive,
		ContractedAmount:  contractedAmount,
		ByContractStatus:  byContractStatus,
	}, nil
}

// Delete removes a customer profile
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}

	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}

const statisticsPageSize = 500
