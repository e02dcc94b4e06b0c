package importer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func plateMapping(t *testing.T, tenantID, configID uuid.UUID) *integration.FieldMapping {
	mapping, err := integration.NewFieldMapping(tenantID, configID, integration.FieldLicensePlate, "", "_vehicle_plate", "")
	assert.NoError(t, err)
	return mapping
}

func TestFieldMapperMap(t *testing.T) {
	tenantID := uuid.New()
	configID := uuid.New()

	t.Run("reads plate from mapped metadata", func(t *testing.T) {
		mapper := NewFieldMapper([]*integration.FieldMapping{plateMapping(t, tenantID, configID)})

		item := integration.ExternalCatalogItem{
			ExternalID:   "101",
			Name:         "Toyota Corolla 2021",
			RegularPrice: "45.00",
			Status:       "publish",
			StockStatus:  "instock",
			Metadata: []integration.CatalogMeta{
				{Key: "_vehicle_plate", Value: "ABC-123"},
			},
		}

		patch, problems := mapper.Map(item)

		assert.Empty(t, problems)
		assert.Equal(t, "ABC-123", *patch.LicensePlate)
		assert.True(t, patch.DailyRate.Equal(decimal.RequireFromString("45.00")))
		assert.Equal(t, fleet.VehicleStatusAvailable, *patch.Status)
		assert.Equal(t, fleet.ListingStatusActive, *patch.Listing)
	})

	t.Run("reads plate from a well-known property by source field", func(t *testing.T) {
		mapping, err := integration.NewFieldMapping(tenantID, configID, integration.FieldLicensePlate, "name", "", "")
		assert.NoError(t, err)
		mapper := NewFieldMapper([]*integration.FieldMapping{mapping})

		item := integration.ExternalCatalogItem{
			ExternalID:   "1",
			Name:         "ABC-123",
			RegularPrice: "45.00",
			StockStatus:  "instock",
		}

		patch, problems := mapper.Map(item)

		assert.Empty(t, problems)
		assert.Equal(t, "ABC-123", *patch.LicensePlate)
		assert.True(t, patch.HasIdentity())
		assert.Equal(t, fleet.VehicleStatusAvailable, *patch.Status)
	})

	t.Run("source field falls through to metadata and attributes", func(t *testing.T) {
		colorMapping, err := integration.NewFieldMapping(tenantID, configID, integration.FieldColor, "exterior", "", "")
		assert.NoError(t, err)
		mapper := NewFieldMapper([]*integration.FieldMapping{colorMapping})

		patch, _ := mapper.Map(integration.ExternalCatalogItem{
			Metadata: []integration.CatalogMeta{{Key: "exterior", Value: "blue"}},
		})
		assert.Equal(t, "blue", *patch.Color)

		patch, _ = mapper.Map(integration.ExternalCatalogItem{
			Attributes: []integration.CatalogAttribute{{Name: "Exterior", Options: []string{"red"}}},
		})
		assert.Equal(t, "red", *patch.Color)
	})

	t.Run("falls back to attribute when metadata key is absent", func(t *testing.T) {
		makeMapping, err := integration.NewFieldMapping(tenantID, configID, integration.FieldMake, "", "_make", "Make")
		assert.NoError(t, err)
		mapper := NewFieldMapper([]*integration.FieldMapping{makeMapping})

		item := integration.ExternalCatalogItem{
			ExternalID: "102",
			Attributes: []integration.CatalogAttribute{
				{Name: "MAKE", Options: []string{"Toyota", "Honda"}},
			},
		}

		patch, _ := mapper.Map(item)

		assert.Equal(t, "Toyota", *patch.Make)
	})

	t.Run("out of stock and unpublished items", func(t *testing.T) {
		mapper := NewFieldMapper(nil)

		patch, _ := mapper.Map(integration.ExternalCatalogItem{
			Status:      "draft",
			StockStatus: "outofstock",
		})

		assert.Equal(t, fleet.VehicleStatusUnavailable, *patch.Status)
		assert.Equal(t, fleet.ListingStatusInactive, *patch.Listing)
	})

	t.Run("absent stock and publish status leave the fields unset", func(t *testing.T) {
		mapper := NewFieldMapper(nil)

		patch, _ := mapper.Map(integration.ExternalCatalogItem{ExternalID: "2"})

		assert.Nil(t, patch.Status)
		assert.Nil(t, patch.Listing)
	})

	t.Run("first image becomes primary", func(t *testing.T) {
		mapper := NewFieldMapper(nil)

		patch, _ := mapper.Map(integration.ExternalCatalogItem{
			Images: []integration.CatalogImage{
				{URL: "https://cdn.example.com/a.jpg"},
				{URL: "https://cdn.example.com/b.jpg"},
			},
		})

		assert.Len(t, patch.Images, 2)
		assert.True(t, patch.Images[0].IsPrimary)
		assert.False(t, patch.Images[1].IsPrimary)
	})

	t.Run("first category lowercased becomes vehicle type", func(t *testing.T) {
		mapper := NewFieldMapper(nil)

		patch, _ := mapper.Map(integration.ExternalCatalogItem{
			Categories: []integration.CatalogCategory{
				{Name: "SUV"},
				{Name: "Family"},
			},
		})

		assert.Equal(t, "suv", *patch.VehicleType)
	})

	t.Run("unparseable numbers are reported and left unset", func(t *testing.T) {
		yearMapping, err := integration.NewFieldMapping(tenantID, configID, integration.FieldYear, "", "_year", "")
		assert.NoError(t, err)
		mapper := NewFieldMapper([]*integration.FieldMapping{yearMapping})

		patch, problems := mapper.Map(integration.ExternalCatalogItem{
			RegularPrice: "not-a-price",
			Metadata: []integration.CatalogMeta{
				{Key: "_year", Value: "twenty21"},
			},
		})

		assert.Nil(t, patch.Year)
		assert.Nil(t, patch.DailyRate)
		assert.Len(t, problems, 2)
	})

	t.Run("mapping nothing yields no identity", func(t *testing.T) {
		mapper := NewFieldMapper(nil)

		patch, _ := mapper.Map(integration.ExternalCatalogItem{
			ExternalID: "103",
			Name:       "Mystery product",
		})

		assert.False(t, patch.HasIdentity())
	})

	t.Run("same input always produces the same patch", func(t *testing.T) {
		mapper := NewFieldMapper([]*integration.FieldMapping{plateMapping(t, tenantID, configID)})
		item := integration.ExternalCatalogItem{
			ExternalID:   "104",
			RegularPrice: "30",
			Metadata:     []integration.CatalogMeta{{Key: "_vehicle_plate", Value: "XYZ-999"}},
		}

		first, firstProblems := mapper.Map(item)
		second, secondProblems := mapper.Map(item)

		assert.Equal(t, first, second)
		assert.Equal(t, firstProblems, secondProblems)
	})
}
