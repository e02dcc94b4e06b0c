package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// VehiclePatch is the mapped view of one catalog item. Nil fields were
// not present in the item; appliers leave the matching vehicle fields
// untouched.
type VehiclePatch struct {
	LicensePlate *string
	Make         *string
	Model        *string
	Year         *int
	Color        *string
	VIN          *string
	Mileage      *int64
	FuelType     *string
	Transmission *string
	Seats        *int
	VehicleType  *string
	DailyRate    *decimal.Decimal
	Quantity     *int
	Description  *string
	Status       *fleet.VehicleStatus
	Listing      *fleet.ListingStatus
	Images       []fleet.VehicleImage
}

// HasIdentity returns true if the patch carries at least one of license
// plate, make or model
func (p VehiclePatch) HasIdentity() bool {
	return deref(p.LicensePlate) != "" || deref(p.Make) != "" || deref(p.Model) != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FieldMapper turns external catalog items into vehicle patches. It is
// a pure transformation: same item and mappings always produce the
// same patch, and nothing is read or written outside its inputs.
type FieldMapper struct {
	mappings map[integration.VehicleField]*integration.FieldMapping
}

// NewFieldMapper builds a mapper from a tenant's field mappings
func NewFieldMapper(mappings []*integration.FieldMapping) *FieldMapper {
	byField := make(map[integration.VehicleField]*integration.FieldMapping, len(mappings))
	for _, m := range mappings {
		byField[m.TargetField] = m
	}
	return &FieldMapper{mappings: byField}
}

// Map converts one catalog item into a vehicle patch. Unparseable
// numeric values are reported as problems and leave their field unset.
func (f *FieldMapper) Map(item integration.ExternalCatalogItem) (VehiclePatch, []string) {
	var problems []string

	patch := VehiclePatch{
		Status:  stockToStatus(item.StockStatus),
		Listing: publishToListing(item.Status),
		Images:  toVehicleImages(item.Images),
	}

	patch.LicensePlate = f.stringField(item, integration.FieldLicensePlate)
	patch.Make = f.stringField(item, integration.FieldMake)
	patch.Model = f.stringField(item, integration.FieldModel)
	patch.Color = f.stringField(item, integration.FieldColor)
	patch.VIN = f.stringField(item, integration.FieldVIN)
	patch.FuelType = f.stringField(item, integration.FieldFuelType)
	patch.Transmission = f.stringField(item, integration.FieldTransmission)

	patch.Year = f.intField(item, integration.FieldYear, &problems)
	patch.Seats = f.intField(item, integration.FieldSeats, &problems)
	patch.Quantity = f.intField(item, integration.FieldQuantity, &problems)

	if raw := f.lookup(item, integration.FieldMileage); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			patch.Mileage = &v
		} else {
			problems = append(problems, fmt.Sprintf("mileage value %q is not a number", raw))
		}
	}

	patch.DailyRate = f.rateField(item, &problems)
	patch.VehicleType = f.typeField(item)
	patch.Description = f.descriptionField(item)

	return patch, problems
}

// lookup resolves the raw value for one vehicle field. A configured
// source field is resolved against well-known item properties first,
// then metadata by the same name, then attributes. The explicit meta
// key and attribute name follow.
func (f *FieldMapper) lookup(item integration.ExternalCatalogItem, field integration.VehicleField) string {
	mapping, ok := f.mappings[field]
	if !ok {
		return ""
	}

	if mapping.SourceField != "" {
		if v, ok := item.Property(mapping.SourceField); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v, ok := item.Meta(mapping.SourceField); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if attr, ok := item.Attribute(mapping.SourceField); ok && len(attr.Options) > 0 {
			return strings.TrimSpace(attr.Options[0])
		}
	}

	if mapping.MetaKey != "" {
		if v, ok := item.Meta(mapping.MetaKey); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	if mapping.AttributeName != "" {
		if attr, ok := item.Attribute(mapping.AttributeName); ok && len(attr.Options) > 0 {
			return strings.TrimSpace(attr.Options[0])
		}
	}

	return ""
}

func (f *FieldMapper) stringField(item integration.ExternalCatalogItem, field integration.VehicleField) *string {
	if v := f.lookup(item, field); v != "" {
		return &v
	}
	return nil
}

func (f *FieldMapper) intField(item integration.ExternalCatalogItem, field integration.VehicleField, problems *[]string) *int {
	raw := f.lookup(item, field)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s value %q is not a number", field, raw))
		return nil
	}
	return &v
}

// rateField prefers the product's regular price and falls back to a
// configured mapping
func (f *FieldMapper) rateField(item integration.ExternalCatalogItem, problems *[]string) *decimal.Decimal {
	raw := strings.TrimSpace(item.RegularPrice)
	if raw == "" {
		raw = f.lookup(item, integration.FieldDailyRate)
	}
	if raw == "" {
		return nil
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("daily rate value %q is not a number", raw))
		return nil
	}
	return &v
}

// typeField prefers the first category, lowercased, and falls back to
// a configured mapping
func (f *FieldMapper) typeField(item integration.ExternalCatalogItem) *string {
	if len(item.Categories) > 0 && strings.TrimSpace(item.Categories[0].Name) != "" {
		v := strings.ToLower(strings.TrimSpace(item.Categories[0].Name))
		return &v
	}
	if v := f.lookup(item, integration.FieldVehicleType); v != "" {
		v = strings.ToLower(v)
		return &v
	}
	return nil
}

// descriptionField prefers the product description and falls back to a
// configured mapping
func (f *FieldMapper) descriptionField(item integration.ExternalCatalogItem) *string {
	if v := strings.TrimSpace(item.Description); v != "" {
		return &v
	}
	if v := f.lookup(item, integration.FieldDescription); v != "" {
		return &v
	}
	return nil
}

// stockToStatus maps a present stock status; an absent one leaves the
// vehicle status untouched
func stockToStatus(stockStatus string) *fleet.VehicleStatus {
	if strings.TrimSpace(stockStatus) == "" {
		return nil
	}
	status := fleet.VehicleStatusUnavailable
	if strings.EqualFold(stockStatus, "instock") {
		status = fleet.VehicleStatusAvailable
	}
	return &status
}

func publishToListing(status string) *fleet.ListingStatus {
	if strings.TrimSpace(status) == "" {
		return nil
	}
	listing := fleet.ListingStatusInactive
	if strings.EqualFold(status, "publish") {
		listing = fleet.ListingStatusActive
	}
	return &listing
}

func toVehicleImages(images []integration.CatalogImage) []fleet.VehicleImage {
	if len(images) == 0 {
		return nil
	}
	result := make([]fleet.VehicleImage, len(images))
	for i, img := range images {
		result[i] = fleet.VehicleImage{
			URL:       img.URL,
			Alt:       img.Alt,
			IsPrimary: i == 0,
		}
	}
	return result
}
