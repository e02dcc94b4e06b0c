package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVehicleRepository implements fleet.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByIDForTenant finds a vehicle by ID within a tenant
func (r *GormVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByLicensePlate finds a vehicle by exact license plate within a tenant
func (r *GormVehicleRepository) FindByLicensePlate(ctx context.Context, tenantID uuid.UUID, plate string) (*fleet.Vehicle, error) {
	if plate == "" {
		return nil, shared.ErrNotFound
	}
	var vehicle fleet.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND license_plate = ?", tenantID, strings.ToUpper(strings.TrimSpace(plate))).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByIdentity finds a vehicle matching on license plate, make or model
func (r *GormVehicleRepository) FindByIdentity(ctx context.Context, tenantID uuid.UUID, plate, make, model string) (*fleet.Vehicle, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	identity := r.db.Session(&gorm.Session{NewDB: true})
	matched := false
	if plate != "" {
		identity = identity.Or("license_plate = ?", strings.ToUpper(strings.TrimSpace(plate)))
		matched = true
	}
	if make != "" {
		identity = identity.Or("make = ?", make)
		matched = true
	}
	if model != "" {
		identity = identity.Or("model = ?", model)
		matched = true
	}
	if !matched {
		return nil, shared.ErrNotFound
	}

	var vehicle fleet.Vehicle
	if err := query.Where(identity).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindAllForTenant finds all vehicles for a tenant with filtering
func (r *GormVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fleet.VehicleFilter) ([]fleet.Vehicle, error) {
	var vehicles []fleet.Vehicle
	query := r.conditions(r.db.WithContext(ctx).Model(&fleet.Vehicle{}).Where("tenant_id = ?", tenantID), filter)

	if err := applyFilter(query, filter.Filter).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// DeleteForTenant deletes a vehicle within a tenant
func (r *GormVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.Vehicle{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts vehicles for a tenant with filtering
func (r *GormVehicleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fleet.VehicleFilter) (int64, error) {
	var count int64
	query := r.conditions(r.db.WithContext(ctx).Model(&fleet.Vehicle{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts vehicles by availability status for a tenant
func (r *GormVehicleRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status fleet.VehicleStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fleet.Vehicle{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormVehicleRepository) conditions(query *gorm.DB, filter fleet.VehicleFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Listing != nil {
		query = query.Where("listing = ?", *filter.Listing)
	}
	if filter.VehicleType != nil {
		query = query.Where("vehicle_type = ?", *filter.VehicleType)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(license_plate) LIKE ? OR LOWER(make) LIKE ? OR LOWER(model) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}
