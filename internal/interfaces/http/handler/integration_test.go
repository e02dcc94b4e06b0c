package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	importerapp "github.com/rentops/backend/internal/application/importer"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
)

// MockConfigRepository implements integration.ConfigRepository
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

// MockFieldMappingRepository implements integration.FieldMappingRepository
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

// MockImportJobRepository implements integration.ImportJobRepository
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

// stubCatalogProvider is a canned in-memory catalog
type stubCatalogProvider struct {
	items   []integration.ExternalCatalogItem
	pingErr error
}

func (p *stubCatalogProvider) FetchPage(ctx context.Context, page, pageSize int) ([]integration.ExternalCatalogItem, error) {
	if page > 1 {
		return nil, nil
	}
	return p.items, nil
}

func (p *stubCatalogProvider) FetchItem(ctx context.Context, externalID string) (*integration.ExternalCatalogItem, error) {
	for _, item := range p.items {
		if item.ExternalID == externalID {
			return &item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (p *stubCatalogProvider) Ping(ctx context.Context) error {
	return p.pingErr
}

type stubProviderFactory struct {
	provider *stubCatalogProvider
}

func (f *stubProviderFactory) New(config *integration.IntegrationConfig) (integration.CatalogProvider, error) {
	return f.provider, nil
}

type integrationMocks struct {
	configRepo  *MockConfigRepository
	mappingRepo *MockFieldMappingRepository
	vehicleRepo *MockVehicleRepository
	provider    *stubCatalogProvider
}

func newIntegrationRouter(t *testing.T) (*gin.Engine, uuid.UUID, *integrationMocks) {
	t.Helper()

	mocks := &integrationMocks{
		configRepo:  new(MockConfigRepository),
		mappingRepo: new(MockFieldMappingRepository),
		vehicleRepo: new(MockVehicleRepository),
		provider:    &stubCatalogProvider{},
	}
	factory := &stubProviderFactory{provider: mocks.provider}
	logger := zap.NewNop()

	handler := NewIntegrationHandler(
		importerapp.NewConnectionService(mocks.configRepo, factory, logger),
		importerapp.NewMappingService(mocks.mappingRepo, mocks.configRepo),
		importerapp.NewImportService(mocks.configRepo, mocks.mappingRepo, new(MockImportJobRepository), mocks.vehicleRepo, factory, logger),
	)

	tenantID := uuid.New()
	engine := gin.New()
	api := engine.Group("/api/v1", authContext(tenantID, uuid.New()))
	handler.RegisterRoutes(api)
	return engine, tenantID, mocks
}

func newTestIntegrationConfig(t *testing.T, tenantID uuid.UUID) *integration.IntegrationConfig {
	t.Helper()
	config, err := integration.NewIntegrationConfig(
		tenantID,
		integration.ProviderWooCommerce,
		"https://shop.example.com",
		"ck_test",
		"cs_test",
	)
	require.NoError(t, err)
	return config
}

func TestIntegrationHandlerCreate(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	mocks.configRepo.On("FindByProvider", mock.Anything, tenantID, integration.ProviderWooCommerce).Return(nil, shared.ErrNotFound)
	mocks.configRepo.On("Save", mock.Anything, mock.AnythingOfType("*integration.IntegrationConfig")).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"provider":        "woocommerce",
		"base_url":        "https://shop.example.com",
		"consumer_key":    "ck_test",
		"consumer_secret": "cs_test",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.NotContains(t, w.Body.String(), "cs_test")
}

func TestIntegrationHandlerCreateInvalidConfig(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	mocks.configRepo.On("FindByProvider", mock.Anything, tenantID, mock.Anything).Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(map[string]string{
		"provider":        "woocommerce",
		"base_url":        "ftp://shop.example.com",
		"consumer_key":    "ck_test",
		"consumer_secret": "cs_test",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.configRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIntegrationHandlerTest(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	config := newTestIntegrationConfig(t, tenantID)
	mocks.configRepo.On("FindByIDForTenant", mock.Anything, tenantID, config.ID).Return(config, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/"+config.ID.String()+"/test", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
}

func TestIntegrationHandlerTestProviderDown(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	config := newTestIntegrationConfig(t, tenantID)
	mocks.configRepo.On("FindByIDForTenant", mock.Anything, tenantID, config.ID).Return(config, nil)
	mocks.provider.pingErr = integration.ErrProviderUnavailable

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/"+config.ID.String()+"/test", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestIntegrationHandlerResyncItem(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	config := newTestIntegrationConfig(t, tenantID)
	mapping, err := integration.NewFieldMapping(tenantID, config.ID, integration.FieldLicensePlate, "", "plate", "")
	require.NoError(t, err)

	mocks.configRepo.On("FindByIDForTenant", mock.Anything, tenantID, config.ID).Return(config, nil)
	mocks.mappingRepo.On("FindByConfig", mock.Anything, tenantID, config.ID).Return([]*integration.FieldMapping{mapping}, nil)
	mocks.provider.items = []integration.ExternalCatalogItem{
		{
			ExternalID:   "42",
			Name:         "Corolla 2022",
			RegularPrice: "45.50",
			Status:       "publish",
			StockStatus:  "instock",
			Metadata:     []integration.CatalogMeta{{Key: "plate", Value: "AAA-111"}},
		},
	}
	mocks.vehicleRepo.On("FindByLicensePlate", mock.Anything, tenantID, "AAA-111").Return(nil, shared.ErrNotFound)
	mocks.vehicleRepo.On("Save", mock.Anything, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/"+config.ID.String()+"/items/42/resync", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"imported"`)
	mocks.vehicleRepo.AssertExpectations(t)
}

func TestIntegrationHandlerResyncItemDisabled(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	config := newTestIntegrationConfig(t, tenantID)
	config.Disable()
	mocks.configRepo.On("FindByIDForTenant", mock.Anything, tenantID, config.ID).Return(config, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/"+config.ID.String()+"/items/42/resync", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTEGRATION_DISABLED", resp.Error.Code)
}

func TestIntegrationHandlerResyncItemMissing(t *testing.T) {
	engine, tenantID, mocks := newIntegrationRouter(t)

	config := newTestIntegrationConfig(t, tenantID)
	mocks.configRepo.On("FindByIDForTenant", mock.Anything, tenantID, config.ID).Return(config, nil)
	mocks.mappingRepo.On("FindByConfig", mock.Anything, tenantID, config.ID).Return([]*integration.FieldMapping{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/"+config.ID.String()+"/items/9999/resync", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
