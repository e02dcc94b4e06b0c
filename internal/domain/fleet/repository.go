package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// VehicleFilter defines filtering options for vehicle queries
type VehicleFilter struct {
	shared.Filter
	Status      *VehicleStatus // Filter by availability status
	Listing     *ListingStatus // Filter by listing status
	VehicleType *string        // Filter by type classification
	BranchID    *uuid.UUID     // Filter by branch
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	// FindByID finds a vehicle by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// FindByIDForTenant finds a vehicle by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error)

	// FindByLicensePlate finds a vehicle by exact license plate within a tenant.
	// Returns shared.ErrNotFound when no vehicle matches.
	FindByLicensePlate(ctx context.Context, tenantID uuid.UUID, plate string) (*Vehicle, error)

	// FindByIdentity finds a vehicle matching on license plate OR make OR
	// model within a tenant. Used by the import duplicate check; the broad
	// OR-match mirrors the duplicate-skip semantics of the import screens.
	FindByIdentity(ctx context.Context, tenantID uuid.UUID, plate, make, model string) (*Vehicle, error)

	// FindAllForTenant finds all vehicles for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter VehicleFilter) ([]Vehicle, error)

	// Save creates or updates a vehicle
	Save(ctx context.Context, vehicle *Vehicle) error

	// DeleteForTenant deletes a vehicle within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts vehicles for a tenant with filtering
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter VehicleFilter) (int64, error)

	// CountByStatus counts vehicles by availability status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status VehicleStatus) (int64, error)
}
