package fleet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/shared"
)

// VehicleService handles fleet business operations
type VehicleService struct {
	vehicleRepo fleet.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo fleet.VehicleRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
	}
}

// Create adds a vehicle to the fleet
func (s *VehicleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVehicleRequest) (*VehicleResponse, error) {
	if req.LicensePlate != "" {
		existing, err := s.vehicleRepo.FindByLicensePlate(ctx, tenantID, req.LicensePlate)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Vehicle with this license plate already exists")
		}
	}

	vehicle, err := fleet.NewVehicle(tenantID, req.LicensePlate, req.Make, req.Model)
	if err != nil {
		return nil, err
	}

	vehicle.Year = req.Year
	vehicle.Color = req.Color
	vehicle.VIN = req.VIN
	vehicle.VehicleType = req.VehicleType
	vehicle.Mileage = req.Mileage
	vehicle.FuelType = req.FuelType
	vehicle.Transmission = req.Transmission
	vehicle.Seats = req.Seats
	vehicle.Description = req.Description
	vehicle.Notes = req.Notes
	if req.Quantity > 0 {
		vehicle.Quantity = req.Quantity
	}
	if req.DailyRate != nil {
		if err := vehicle.SetDailyRate(*req.DailyRate); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil {
		vehicle.AssignBranch(*req.BranchID)
	}
	if len(req.Images) > 0 {
		vehicle.SetImages(toDomainImages(req.Images))
	}
	if req.CreatedBy != nil {
		vehicle.CreatedBy = req.CreatedBy
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// GetByID retrieves a vehicle by ID
func (s *VehicleService) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// List retrieves vehicles with filtering and pagination
func (s *VehicleService) List(ctx context.Context, tenantID uuid.UUID, filter VehicleListFilter) ([]VehicleResponse, int64, error) {
	domainFilter := fleet.VehicleFilter{Filter: shared.DefaultFilter()}
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
		status := fleet.VehicleStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Listing != "" {
		listing := fleet.ListingStatus(filter.Listing)
		domainFilter.Listing = &listing
	}
	if filter.VehicleType != "" {
		domainFilter.VehicleType = &filter.VehicleType
	}

	vehicles, err := s.vehicleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vehicleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = ToVehicleResponse(&vehicles[i])
	}

	return responses, total, nil
}

// Update updates a vehicle
func (s *VehicleService) Update(ctx context.Context, tenantID, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.LicensePlate != nil {
		if err := vehicle.SetLicensePlate(*req.LicensePlate); err != nil {
			return nil, err
		}
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.VIN != nil {
		vehicle.VIN = *req.VIN
	}
	if req.VehicleType != nil {
		vehicle.VehicleType = *req.VehicleType
	}
	if req.DailyRate != nil {
		if err := vehicle.SetDailyRate(*req.DailyRate); err != nil {
			return nil, err
		}
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.FuelType != nil {
		vehicle.FuelType = *req.FuelType
	}
	if req.Transmission != nil {
		vehicle.Transmission = *req.Transmission
	}
	if req.Seats != nil {
		vehicle.Seats = *req.Seats
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		vehicle.Quantity = *req.Quantity
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}
	if req.Notes != nil {
		vehicle.Notes = *req.Notes
	}
	if req.BranchID != nil {
		vehicle.AssignBranch(*req.BranchID)
	}
	if req.Images != nil {
		vehicle.SetImages(toDomainImages(req.Images))
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// SetStatus changes a vehicle's availability status
func (s *VehicleService) SetStatus(ctx context.Context, tenantID, vehicleID uuid.UUID, status string) error {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return err
	}

	if err := vehicle.SetStatus(fleet.VehicleStatus(status)); err != nil {
		return err
	}

	return s.vehicleRepo.Save(ctx, vehicle)
}

// SetListing changes whether a vehicle is listed for rental
func (s *VehicleService) SetListing(ctx context.Context, tenantID, vehicleID uuid.UUID, listing string) error {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return err
	}

	switch fleet.ListingStatus(listing) {
	case fleet.ListingStatusActive, fleet.ListingStatusInactive:
		vehicle.SetListing(fleet.ListingStatus(listing))
	default:
		return shared.NewDomainError("INVALID_LISTING", "Invalid listing status")
	}

	return s.vehicleRepo.Save(ctx, vehicle)
}

// Delete removes a vehicle from the fleet
func (s *VehicleService) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.Status == fleet.VehicleStatusRented {
		return shared.NewDomainError("VEHICLE_RENTED", "Cannot delete a rented vehicle")
	}

	return s.vehicleRepo.DeleteForTenant(ctx, tenantID, vehicleID)
}

func toDomainImages(images []VehicleImageDTO) []fleet.VehicleImage {
	result := make([]fleet.VehicleImage, len(images))
	for i, img := range images {
		result[i] = fleet.VehicleImage{URL: img.URL, Alt: img.Alt, IsPrimary: img.IsPrimary}
	}
	return result
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrNotFound.Code
	}
	return false
}
