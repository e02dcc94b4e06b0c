package integration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIntegrationConfigValidate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid config passes", func(t *testing.T) {
		cfg, err := NewIntegrationConfig(tenantID, ProviderWooCommerce,
			"https://shop.example.com", "ck_abc", "cs_def")

		assert.NoError(t, err)
		assert.True(t, cfg.IsEnabled)
		assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	})

	t.Run("trailing slash is stripped", func(t *testing.T) {
		cfg, err := NewIntegrationConfig(tenantID, ProviderWooCommerce,
			"https://shop.example.com/", "ck_abc", "cs_def")

		assert.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	})

	t.Run("collects every problem", func(t *testing.T) {
		_, err := NewIntegrationConfig(tenantID, ProviderWooCommerce,
			"ftp://shop.example.com", "", "cs_def")

		assert.Error(t, err)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.GreaterOrEqual(t, len(verr.Problems), 2)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := NewIntegrationConfig(tenantID, ProviderType("shopify"),
			"https://shop.example.com", "ck", "cs")

		assert.Error(t, err)
	})
}

func TestImportJobTransitions(t *testing.T) {
	tenantID := uuid.New()
	configID := uuid.New()

	t.Run("completes once with counts and item errors", func(t *testing.T) {
		job := NewImportJob(tenantID, configID, ImportOptions{})
		assert.Equal(t, ImportJobRunning, job.Status)

		counts := ImportCounts{Imported: 4, Failed: 1}
		err := job.Complete(counts, []string{"item 17: missing price"})

		assert.NoError(t, err)
		assert.Equal(t, ImportJobCompleted, job.Status)
		assert.Equal(t, 5, job.Counts.Total())
		assert.NotNil(t, job.FinishedAt)

		assert.Error(t, job.Fail("late failure"))
		assert.Error(t, job.Complete(counts, nil))
	})

	t.Run("fails once", func(t *testing.T) {
		job := NewImportJob(tenantID, configID, ImportOptions{})

		assert.NoError(t, job.Fail("provider unreachable"))
		assert.Equal(t, ImportJobFailed, job.Status)
		assert.Contains(t, job.Errors, "provider unreachable")

		assert.Error(t, job.Complete(ImportCounts{}, nil))
	})

	t.Run("page size defaults", func(t *testing.T) {
		assert.Equal(t, DefaultImportPageSize, ImportOptions{}.EffectivePageSize())
		assert.Equal(t, 25, ImportOptions{PageSize: 25}.EffectivePageSize())
	})
}

func TestExternalCatalogItemLookups(t *testing.T) {
	item := ExternalCatalogItem{
		Attributes: []CatalogAttribute{
			{Name: "Fuel Type", Options: []string{"diesel", "petrol"}},
		},
		Metadata: []CatalogMeta{
			{Key: "_vehicle_plate", Value: "ABC-123"},
		},
	}

	attr, ok := item.Attribute("fuel type")
	assert.True(t, ok)
	assert.Equal(t, []string{"diesel", "petrol"}, attr.Options)

	_, ok = item.Attribute("color")
	assert.False(t, ok)

	v, ok := item.Meta("_vehicle_plate")
	assert.True(t, ok)
	assert.Equal(t, "ABC-123", v)

	_, ok = item.Meta("_VEHICLE_PLATE")
	assert.False(t, ok)
}
