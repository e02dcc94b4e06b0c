package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
)

// ContractService handles rental contract business operations
type ContractService struct {
	contractRepo crm.ContractRepository
	customerRepo crm.CustomerProfileRepository
	vehicleRepo  fleet.VehicleRepository
	settingsRepo org.SettingsRepository
}

// NewContractService creates a new ContractService
func NewContractService(
	contractRepo crm.ContractRepository,
	customerRepo crm.CustomerProfileRepository,
	vehicleRepo fleet.VehicleRepository,
	settingsRepo org.SettingsRepository,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		settingsRepo: settingsRepo,
	}
}

// Create creates a new draft contract. The contract number is taken
// from the tenant's numbering sequence.
func (s *ContractService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContractRequest) (*ContractResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot create a contract for an inactive customer")
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != fleet.VehicleStatusAvailable {
		return nil, shared.NewDomainError("VEHICLE_UNAVAILABLE", "Vehicle is not available for rental")
	}

	number, err := s.nextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	contract, err := crm.NewContract(tenantID, number, req.CustomerID, req.VehicleID, req.StartDate, req.EndDate, req.DailyRate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		contract.CreatedBy = req.CreatedBy
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	response := ToContractResponse(contract)
	return &response, nil
}

func (s *ContractService) nextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	settings, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}

	n := settings.NextContractNumber()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%06d", settings.ContractPrefix, n), nil
}

// GetByID retrieves a contract by ID
func (s *ContractService) GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	response := ToContractResponse(contract)
	return &response, nil
}

// List retrieves contracts with filtering and pagination
func (s *ContractService) List(ctx context.Context, tenantID uuid.UUID, filter ContractListFilter) ([]ContractResponse, int64, error) {
	domainFilter := crm.ContractFilter{Filter: shared.DefaultFilter()}
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
	domainFilter.CustomerID = filter.CustomerID
	domainFilter.VehicleID = filter.VehicleID
	if filter.Status != "" {
		status := crm.ContractStatus(filter.Status)
		domainFilter.Status = &status
	}

	contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contractRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = ToContractResponse(&contracts[i])
	}

	return responses, total, nil
}

// Reschedule changes a contract's rental period and recalculates the total
func (s *ContractService) Reschedule(ctx context.Context, tenantID, contractID uuid.UUID, req RescheduleContractRequest) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	if err := contract.Reschedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	response := ToContractResponse(contract)
	return &response, nil
}

// Activate moves a draft contract to active and marks the vehicle rented
func (s *ContractService) Activate(ctx context.Context, tenantID, contractID uuid.UUID) error {
	contract, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return err
	}

	if err := contract.Activate(); err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, contract.VehicleID)
	if err != nil {
		return err
	}
	if err := vehicle.SetStatus(fleet.VehicleStatusRented); err != nil {
		return err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return err
	}

	return s.vehicleRepo.Save(ctx, vehicle)
}

// Complete finishes an active contract and releases the vehicle
func (s *ContractService) Complete(ctx context.Context, tenantID, contractID uuid.UUID) error {
	contract, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return err
	}

	if err := contract.Complete(); err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, contract.VehicleID)
	if err != nil {
		return err
	}
	if err := vehicle.SetStatus(fleet.VehicleStatusAvailable); err != nil {
		return err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return err
	}

	return s.vehicleRepo.Save(ctx, vehicle)
}

// Cancel cancels a draft or active contract and releases the vehicle
// when it was already handed out
func (s *ContractService) Cancel(ctx context.Context, tenantID, contractID uuid.UUID) error {
	contract, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, contractID)
	if err != nil {
		return err
	}

	wasActive := contract.Status == crm.ContractStatusActive

	if err := contract.Cancel(); err != nil {
		return err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return err
	}

	if wasActive {
		vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, contract.VehicleID)
		if err != nil {
			return err
		}
		if err := vehicle.SetStatus(fleet.VehicleStatusAvailable); err != nil {
			return err
		}
		return s.vehicleRepo.Save(ctx, vehicle)
	}

	return nil
}
