package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.IntegrationConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.IntegrationConfig), args.Error(1)
}

func (m *MockConfigRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.IntegrationConfig, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.IntegrationConfig), args.Error(1)
}

func (m *MockConfigRepository) FindByProvider(ctx context.Context, tenantID uuid.UUID, provider integration.ProviderType) (*integration.IntegrationConfig, error) {
	args := m.Called(ctx, tenantID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.IntegrationConfig), args.Error(1)
}

func (m *MockConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*integration.IntegrationConfig, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*integration.IntegrationConfig), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, config *integration.IntegrationConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockConfigRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockFieldMappingRepository struct {
	mock.Mock
}

func (m *MockFieldMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.FieldMapping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.FieldMapping), args.Error(1)
}

func (m *MockFieldMappingRepository) FindByConfig(ctx context.Context, tenantID, configID uuid.UUID) ([]*integration.FieldMapping, error) {
	args := m.Called(ctx, tenantID, configID)
	return args.Get(0).([]*integration.FieldMapping), args.Error(1)
}

func (m *MockFieldMappingRepository) Save(ctx context.Context, mapping *integration.FieldMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockFieldMappingRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockImportJobRepository struct {
	mock.Mock
}

func (m *MockImportJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.ImportJob, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*integration.ImportJob], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*integration.ImportJob]), args.Error(1)
}

func (m *MockImportJobRepository) FindStale(ctx context.Context, olderThan time.Time) ([]*integration.ImportJob, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]*integration.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) Save(ctx context.Context, job *integration.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByLicensePlate(ctx context.Context, tenantID uuid.UUID, plate string) (*fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByIdentity(ctx context.Context, tenantID uuid.UUID, plate, make, model string) (*fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, plate, make, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter fleet.VehicleFilter) ([]fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter fleet.VehicleFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status fleet.VehicleStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Stub provider
// =============================================================================

type stubProvider struct {
	pages    [][]integration.ExternalCatalogItem
	fetchErr error
}

func (p *stubProvider) FetchPage(ctx context.Context, page, pageSize int) ([]integration.ExternalCatalogItem, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	if page > len(p.pages) {
		return nil, nil
	}
	return p.pages[page-1], nil
}

func (p *stubProvider) FetchItem(ctx context.Context, externalID string) (*integration.ExternalCatalogItem, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	for _, page := range p.pages {
		for _, item := range page {
			if item.ExternalID == externalID {
				return &item, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (p *stubProvider) Ping(ctx context.Context) error {
	return p.fetchErr
}

type stubFactory struct {
	provider integration.CatalogProvider
}

func (f *stubFactory) New(config *integration.IntegrationConfig) (integration.CatalogProvider, error) {
	return f.provider, nil
}

// =============================================================================
// Tests
// =============================================================================

func plateItem(externalID, plate string) integration.ExternalCatalogItem {
	return integration.ExternalCatalogItem{
		ExternalID:   externalID,
		RegularPrice: "40",
		Status:       "publish",
		StockStatus:  "instock",
		Metadata:     []integration.CatalogMeta{{Key: "_vehicle_plate", Value: plate}},
	}
}

func newTestService(t *testing.T, provider integration.CatalogProvider) (*ImportService, *MockConfigRepository, *MockFieldMappingRepository, *MockImportJobRepository, *MockVehicleRepository, uuid.UUID, uuid.UUID) {
	tenantID := uuid.New()

	config, err := integration.NewIntegrationConfig(tenantID, integration.ProviderWooCommerce,
		"https://shop.example.com", "ck_test", "cs_test")
	assert.NoError(t, err)

	configs := new(MockConfigRepository)
	mappings := new(MockFieldMappingRepository)
	jobs := new(MockImportJobRepository)
	vehicles := new(MockVehicleRepository)

	ctx := context.Background()
	configs.On("FindByIDForTenant", ctx, tenantID, config.ID).Return(config, nil)
	configs.On("Save", ctx, config).Return(nil)

	mapping, err := integration.NewFieldMapping(tenantID, config.ID, integration.FieldLicensePlate, "", "_vehicle_plate", "")
	assert.NoError(t, err)
	mappings.On("FindByConfig", ctx, tenantID, config.ID).Return([]*integration.FieldMapping{mapping}, nil)

	jobs.On("Save", ctx, mock.AnythingOfType("*integration.ImportJob")).Return(nil)

	service := NewImportService(configs, mappings, jobs, vehicles, &stubFactory{provider: provider}, zap.NewNop())
	return service, configs, mappings, jobs, vehicles, tenantID, config.ID
}

func TestImportServiceRun(t *testing.T) {
	ctx := context.Background()

	t.Run("imports every item and completes", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("1", "AAA-111"), plateItem("2", "BBB-222")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		vehicles.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, 2, resp.Imported)
		assert.Empty(t, resp.Errors)
		vehicles.AssertNumberOfCalls(t, "Save", 2)

		assert.Len(t, resp.Vehicles, 2)
		assert.Equal(t, "AAA-111", resp.Vehicles[0].LicensePlate)
		assert.Equal(t, "BBB-222", resp.Vehicles[1].LicensePlate)
	})

	t.Run("fetch failure fails the whole job", func(t *testing.T) {
		provider := &stubProvider{fetchErr: errors.New("connection refused")}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "failed", resp.Status)
		assert.NotEmpty(t, resp.Errors)
		vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("one bad item does not abort the run", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("1", "AAA-111"), plateItem("2", "BBB-222"), plateItem("3", "CCC-333")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		vehicles.On("Save", ctx, mock.MatchedBy(func(v *fleet.Vehicle) bool {
			return v.LicensePlate == "BBB-222"
		})).Return(errors.New("constraint violation"))
		vehicles.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, 2, resp.Imported)
		assert.Equal(t, 1, resp.Failed)
		assert.Len(t, resp.Errors, 1)
	})

	t.Run("items without identity are skipped with an error", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{
				plateItem("1", "AAA-111"),
				{ExternalID: "2", Name: "Unidentifiable", RegularPrice: "10"},
			},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		vehicles.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Imported)
		assert.Equal(t, 1, resp.Skipped)
		assert.Len(t, resp.Errors, 1)
	})

	t.Run("skip duplicates matches on any identity field", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("1", "AAA-111")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		existing, err := fleet.NewVehicle(tenantID, "AAA-111", "", "")
		assert.NoError(t, err)
		vehicles.On("FindByIdentity", ctx, tenantID, "AAA-111", "", "").Return(existing, nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{SkipDuplicates: true})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Skipped)
		assert.Zero(t, resp.Imported)
		vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("update existing matches on plate only", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("1", "AAA-111")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		existing, err := fleet.NewVehicle(tenantID, "AAA-111", "Toyota", "Corolla")
		assert.NoError(t, err)
		vehicles.On("FindByLicensePlate", ctx, tenantID, "AAA-111").Return(existing, nil)
		vehicles.On("Save", ctx, existing).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{UpdateExisting: true})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.Zero(t, resp.Imported)
		assert.True(t, existing.DailyRate.Equal(decimal.NewFromInt(40)))
	})

	t.Run("update without stock status keeps the vehicle available", func(t *testing.T) {
		item := integration.ExternalCatalogItem{
			ExternalID: "1",
			Metadata:   []integration.CatalogMeta{{Key: "_vehicle_plate", Value: "AAA-111"}},
		}
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{{item}}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		existing, err := fleet.NewVehicle(tenantID, "AAA-111", "Toyota", "Corolla")
		assert.NoError(t, err)
		assert.Equal(t, fleet.VehicleStatusAvailable, existing.Status)
		vehicles.On("FindByLicensePlate", ctx, tenantID, "AAA-111").Return(existing, nil)
		vehicles.On("Save", ctx, existing).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{UpdateExisting: true})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, fleet.VehicleStatusAvailable, existing.Status)
		assert.Equal(t, fleet.ListingStatusActive, existing.Listing)
	})

	t.Run("walks pages until a short page", func(t *testing.T) {
		full := make([]integration.ExternalCatalogItem, 2)
		for i := range full {
			full[i] = plateItem(string(rune('a'+i)), "PLT-"+string(rune('A'+i)))
		}
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			full,
			{plateItem("z", "ZZZ-999")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		vehicles.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.Run(ctx, tenantID, configID, RunImportRequest{PageSize: 2})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Imported)
	})
}

func TestImportServiceResyncItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a vehicle when none matches", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("10", "DDD-444")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		vehicles.On("FindByLicensePlate", ctx, tenantID, "DDD-444").Return(nil, shared.ErrNotFound)
		vehicles.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.ResyncItem(ctx, tenantID, configID, "10")

		assert.NoError(t, err)
		assert.Equal(t, "imported", resp.Outcome)
		assert.Equal(t, "10", resp.ExternalID)
		vehicles.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("updates the vehicle matching the plate", func(t *testing.T) {
		provider := &stubProvider{pages: [][]integration.ExternalCatalogItem{
			{plateItem("10", "DDD-444")},
		}}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		existing, err := fleet.NewVehicle(tenantID, "DDD-444", "", "")
		assert.NoError(t, err)
		vehicles.On("FindByLicensePlate", ctx, tenantID, "DDD-444").Return(existing, nil)
		vehicles.On("Save", ctx, existing).Return(nil)

		resp, err := service.ResyncItem(ctx, tenantID, configID, "10")

		assert.NoError(t, err)
		assert.Equal(t, "updated", resp.Outcome)
		assert.True(t, existing.DailyRate.Equal(decimal.NewFromInt(40)))
	})

	t.Run("provider failure is returned to the caller", func(t *testing.T) {
		provider := &stubProvider{fetchErr: errors.New("connection refused")}
		service, _, _, _, vehicles, tenantID, configID := newTestService(t, provider)

		resp, err := service.ResyncItem(ctx, tenantID, configID, "10")

		assert.Error(t, err)
		assert.Nil(t, resp)
		vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
