package fleet

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VehicleStatus represents the availability of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusUnavailable VehicleStatus = "unavailable"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// IsValid returns true if the status is valid
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusUnavailable, VehicleStatusRented, VehicleStatusMaintenance:
		return true
	default:
		return false
	}
}

// ListingStatus represents whether a vehicle is listed for rental
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusInactive ListingStatus = "inactive"
)

// VehicleImage is an image attached to a vehicle, ordered, with at most
// one primary image per vehicle by convention.
type VehicleImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Vehicle represents a rentable vehicle.
// It is the aggregate root for fleet operations and the target entity of
// the catalog import pipeline. LicensePlate is the dedup identity.
type Vehicle struct {
	shared.TenantAggregateRoot
	LicensePlate string          `gorm:"type:varchar(20);index:idx_vehicle_tenant_plate"`
	Make         string          `gorm:"type:varchar(100);index"`
	Model        string          `gorm:"type:varchar(100);index"`
	Year         int             `gorm:"not null;default:0"`
	Color        string          `gorm:"type:varchar(50)"`
	VIN          string          `gorm:"type:varchar(50)"`
	VehicleType  string          `gorm:"type:varchar(50);index"` // e.g. sedan, suv, van
	DailyRate    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Mileage      int64           `gorm:"not null;default:0"`
	FuelType     string          `gorm:"type:varchar(30)"`
	Transmission string          `gorm:"type:varchar(30)"`
	Seats        int             `gorm:"not null;default:0"`
	Quantity     int             `gorm:"not null;default:1"` // Identical units in the fleet
	Description  string          `gorm:"type:text"`
	Notes        string          `gorm:"type:text"`
	Status       VehicleStatus   `gorm:"type:varchar(20);not null;default:'available'"`
	Listing      ListingStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	BranchID     *uuid.UUID      `gorm:"type:uuid;index"`
	Images       []VehicleImage  `gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle for a tenant
func NewVehicle(tenantID uuid.UUID, licensePlate, make, model string) (*Vehicle, error) {
	if licensePlate == "" && make == "" && model == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Vehicle requires a license plate, make, or model")
	}
	if len(licensePlate) > 20 {
		return nil, shared.NewDomainError("INVALID_PLATE", "License plate cannot exceed 20 characters")
	}

	vehicle := &Vehicle{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LicensePlate:        strings.ToUpper(strings.TrimSpace(licensePlate)),
		Make:                make,
		Model:               model,
		Quantity:            1,
		Status:              VehicleStatusAvailable,
		Listing:             ListingStatusActive,
	}

	vehicle.AddDomainEvent(NewVehicleCreatedEvent(vehicle))

	return vehicle, nil
}

// SetLicensePlate updates the license plate
func (v *Vehicle) SetLicensePlate(plate string) error {
	if len(plate) > 20 {
		return shared.NewDomainError("INVALID_PLATE", "License plate cannot exceed 20 characters")
	}
	v.LicensePlate = strings.ToUpper(strings.TrimSpace(plate))
	v.touch()
	return nil
}

// SetDailyRate sets the daily rental rate
func (v *Vehicle) SetDailyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Daily rate cannot be negative")
	}
	v.DailyRate = rate
	v.touch()
	return nil
}

// SetStatus sets the availability status
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid vehicle status")
	}
	oldStatus := v.Status
	v.Status = status
	v.touch()
	if oldStatus != status {
		v.AddDomainEvent(NewVehicleStatusChangedEvent(v, oldStatus, status))
	}
	return nil
}

// SetListing sets the listing status
func (v *Vehicle) SetListing(listing ListingStatus) {
	v.Listing = listing
	v.touch()
}

// SetImages replaces the image list. The first image is flagged primary
// when no image carries the flag.
func (v *Vehicle) SetImages(images []VehicleImage) {
	if len(images) > 0 {
		hasPrimary := false
		for _, img := range images {
			if img.IsPrimary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			images[0].IsPrimary = true
		}
	}
	v.Images = images
	v.touch()
}

// AssignBranch assigns the vehicle to a branch
func (v *Vehicle) AssignBranch(branchID uuid.UUID) {
	v.BranchID = &branchID
	v.touch()
}

// IsAvailable returns true if the vehicle can be rented
func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusAvailable && v.Listing == ListingStatusActive
}

func (v *Vehicle) touch() {
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}
