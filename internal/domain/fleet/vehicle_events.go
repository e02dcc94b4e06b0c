package fleet

import (
	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeVehicle = "Vehicle"

// Event type constants
const (
	EventTypeVehicleCreated       = "VehicleCreated"
	EventTypeVehicleStatusChanged = "VehicleStatusChanged"
)

// VehicleCreatedEvent is published when a new vehicle is created
type VehicleCreatedEvent struct {
	shared.BaseDomainEvent
	VehicleID    uuid.UUID `json:"vehicle_id"`
	LicensePlate string    `json:"license_plate"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
}

// NewVehicleCreatedEvent creates a new VehicleCreatedEvent
func NewVehicleCreatedEvent(vehicle *Vehicle) *VehicleCreatedEvent {
	return &VehicleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVehicleCreated, AggregateTypeVehicle, vehicle.ID, vehicle.TenantID),
		VehicleID:       vehicle.ID,
		LicensePlate:    vehicle.LicensePlate,
		Make:            vehicle.Make,
		Model:           vehicle.Model,
	}
}

// VehicleStatusChangedEvent is published when a vehicle's availability changes
type VehicleStatusChangedEvent struct {
	shared.BaseDomainEvent
	VehicleID uuid.UUID     `json:"vehicle_id"`
	OldStatus VehicleStatus `json:"old_status"`
	NewStatus VehicleStatus `json:"new_status"`
}

// NewVehicleStatusChangedEvent creates a new VehicleStatusChangedEvent
func NewVehicleStatusChangedEvent(vehicle *Vehicle, oldStatus, newStatus VehicleStatus) *VehicleStatusChangedEvent {
	return &VehicleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVehicleStatusChanged, AggregateTypeVehicle, vehicle.ID, vehicle.TenantID),
		VehicleID:       vehicle.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
