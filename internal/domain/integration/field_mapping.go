package integration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// VehicleField names a vehicle attribute an external catalog value can
// be mapped onto
type VehicleField string

const (
	FieldLicensePlate VehicleField = "license_plate"
	FieldMake         VehicleField = "make"
	FieldModel        VehicleField = "model"
	FieldYear         VehicleField = "year"
	FieldColor        VehicleField = "color"
	FieldVIN          VehicleField = "vin"
	FieldMileage      VehicleField = "mileage"
	FieldFuelType     VehicleField = "fuel_type"
	FieldTransmission VehicleField = "transmission"
	FieldSeats        VehicleField = "seats"
	FieldVehicleType  VehicleField = "vehicle_type"
	FieldDailyRate    VehicleField = "daily_rate"
	FieldQuantity     VehicleField = "quantity"
	FieldDescription  VehicleField = "description"
)

var mappableFields = map[VehicleField]struct{}{
	FieldLicensePlate: {},
	FieldMake:         {},
	FieldModel:        {},
	FieldYear:         {},
	FieldColor:        {},
	FieldVIN:          {},
	FieldMileage:      {},
	FieldFuelType:     {},
	FieldTransmission: {},
	FieldSeats:        {},
	FieldVehicleType:  {},
	FieldDailyRate:    {},
	FieldQuantity:     {},
	FieldDescription:  {},
}

// IsValid returns true if the field is mappable
func (f VehicleField) IsValid() bool {
	_, ok := mappableFields[f]
	return ok
}

// MappableFields lists every vehicle field a mapping may target
func MappableFields() []VehicleField {
	fields := make([]VehicleField, 0, len(mappableFields))
	for f := range mappableFields {
		fields = append(fields, f)
	}
	return fields
}

// FieldMapping tells the importer where to find one vehicle field in a
// catalog item. SourceField names a plain external field and is
// resolved against well-known item properties first, then metadata,
// then attributes. MetaKey is matched against item metadata exactly,
// AttributeName against attribute names case-insensitively. Any of the
// three may be empty as long as one is set.
type FieldMapping struct {
	shared.TenantAggregateRoot
	ConfigID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_mapping_config_field,priority:1"`
	TargetField   VehicleField `gorm:"type:varchar(30);not null;uniqueIndex:idx_mapping_config_field,priority:2"`
	SourceField   string       `gorm:"type:varchar(100)"`
	MetaKey       string       `gorm:"type:varchar(100)"`
	AttributeName string       `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (FieldMapping) TableName() string {
	return "field_mappings"
}

// NewFieldMapping creates a mapping for one vehicle field
func NewFieldMapping(tenantID, configID uuid.UUID, target VehicleField, sourceField, metaKey, attributeName string) (*FieldMapping, error) {
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_FIELD", "Unknown vehicle field")
	}

	sourceField = strings.TrimSpace(sourceField)
	metaKey = strings.TrimSpace(metaKey)
	attributeName = strings.TrimSpace(attributeName)
	if sourceField == "" && metaKey == "" && attributeName == "" {
		return nil, shared.NewDomainError("INVALID_MAPPING", "Mapping needs a source field, a metadata key or an attribute name")
	}

	mapping := &FieldMapping{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ConfigID:            configID,
		TargetField:         target,
		SourceField:         sourceField,
		MetaKey:             metaKey,
		AttributeName:       attributeName,
	}

	return mapping, nil
}

// Update changes where the target field is read from
func (m *FieldMapping) Update(sourceField, metaKey, attributeName string) error {
	sourceField = strings.TrimSpace(sourceField)
	metaKey = strings.TrimSpace(metaKey)
	attributeName = strings.TrimSpace(attributeName)
	if sourceField == "" && metaKey == "" && attributeName == "" {
		return shared.NewDomainError("INVALID_MAPPING", "Mapping needs a source field, a metadata key or an attribute name")
	}

	m.SourceField = sourceField
	m.MetaKey = metaKey
	m.AttributeName = attributeName
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}
