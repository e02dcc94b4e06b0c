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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	crmapp "github.com/rentops/backend/internal/application/crm"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
)

// MockCustomerProfileRepository implements crm.CustomerProfileRepository
type MockCustomerProfileRepository struct {
	mock.Mock
}

func (m *MockCustomerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CustomerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerProfile), args.Error(1)
}

func (m *MockCustomerProfileRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.CustomerProfile, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerProfile), args.Error(1)
}

func (m *MockCustomerProfileRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*crm.CustomerProfile, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CustomerProfile), args.Error(1)
}

func (m *MockCustomerProfileRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.CustomerProfile, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]crm.CustomerProfile), args.Error(1)
}

func (m *MockCustomerProfileRepository) Save(ctx context.Context, customer *crm.CustomerProfile) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerProfileRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerProfileRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerProfileRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status crm.CustomerStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerProfileRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerProfileRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// MockCommunicationLogRepository implements crm.CommunicationLogRepository
type MockCommunicationLogRepository struct {
	mock.Mock
}

func (m *MockCommunicationLogRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.CommunicationLog, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.CommunicationLog), args.Error(1)
}

func (m *MockCommunicationLogRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]crm.CommunicationLog, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]crm.CommunicationLog), args.Error(1)
}

func (m *MockCommunicationLogRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommunicationLogRepository) Save(ctx context.Context, log *crm.CommunicationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// MockContractRepository implements crm.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*crm.Contract, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter crm.ContractFilter) ([]crm.Contract, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]crm.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]crm.Contract, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).([]crm.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *crm.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContractRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter crm.ContractFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newCustomerRouter(t *testing.T, repo *MockCustomerProfileRepository, contractRepo *MockContractRepository, logRepo *MockCommunicationLogRepository) (*gin.Engine, uuid.UUID) {
	t.Helper()

	tenantID := uuid.New()
	userID := uuid.New()

	handler := NewCustomerHandler(
		crmapp.NewCustomerService(repo, contractRepo),
		crmapp.NewCommunicationService(logRepo, repo),
	)

	engine := gin.New()
	api := engine.Group("/api/v1", authContext(tenantID, userID))
	handler.RegisterRoutes(api)
	return engine, tenantID
}

func TestCustomerHandlerCreate(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	repo.On("ExistsByCode", mock.Anything, tenantID, "CUST-001").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, tenantID, "jane@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.CustomerProfile")).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"code":      "CUST-001",
		"full_name": "Jane Renter",
		"email":     "jane@example.com",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestCustomerHandlerCreateDuplicateCode(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	repo.On("ExistsByCode", mock.Anything, tenantID, "CUST-001").Return(true, nil)

	body, _ := json.Marshal(map[string]any{
		"code":      "CUST-001",
		"full_name": "Jane Renter",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

func TestCustomerHandlerCreateMissingName(t *testing.T) {
	engine, _ := newCustomerRouter(t, new(MockCustomerProfileRepository), new(MockContractRepository), new(MockCommunicationLogRepository))

	body, _ := json.Marshal(map[string]any{"code": "CUST-001"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandlerGetByID(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	customer, err := crm.NewCustomerProfile(tenantID, "CUST-007", "Max Driver")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestCustomerHandlerGetByIDNotFound(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	missing := uuid.New()
	repo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+missing.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandlerGetByIDInvalidUUID(t *testing.T) {
	engine, _ := newCustomerRouter(t, new(MockCustomerProfileRepository), new(MockContractRepository), new(MockCommunicationLogRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandlerList(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	first, err := crm.NewCustomerProfile(tenantID, "CUST-001", "Jane Renter")
	require.NoError(t, err)
	second, err := crm.NewCustomerProfile(tenantID, "CUST-002", "Max Driver")
	require.NoError(t, err)

	repo.On("FindAllForTenant", mock.Anything, tenantID, mock.Anything).Return([]crm.CustomerProfile{*first, *second}, nil)
	repo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?page=1&page_size=20", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestCustomerHandlerStatistics(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	contractRepo := new(MockContractRepository)
	engine, tenantID := newCustomerRouter(t, repo, contractRepo, new(MockCommunicationLogRepository))

	repo.On("CountByStatus", mock.Anything, tenantID, crm.CustomerStatusActive).Return(int64(5), nil)
	repo.On("CountByStatus", mock.Anything, tenantID, crm.CustomerStatusInactive).Return(int64(2), nil)
	contractRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.AnythingOfType("crm.ContractFilter")).Return([]crm.Contract{
		{Status: crm.ContractStatusActive, TotalAmount: decimal.NewFromInt(420)},
		{Status: crm.ContractStatusCompleted, TotalAmount: decimal.NewFromInt(80)},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/summary", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), data["active_customers"])
	assert.Equal(t, float64(2), data["inactive_customers"])
	assert.Equal(t, float64(7), data["total_customers"])
	assert.Equal(t, "500", data["contracted_amount"])
	repo.AssertExpectations(t)
	contractRepo.AssertExpectations(t)
}

func TestCustomerHandlerDeactivate(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), new(MockCommunicationLogRepository))

	customer, err := crm.NewCustomerProfile(tenantID, "CUST-001", "Jane Renter")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.CustomerProfile")).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/deactivate", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, crm.CustomerStatusInactive, customer.Status)
}

func TestCustomerHandlerLogCommunication(t *testing.T) {
	repo := new(MockCustomerProfileRepository)
	logRepo := new(MockCommunicationLogRepository)
	engine, tenantID := newCustomerRouter(t, repo, new(MockContractRepository), logRepo)

	customer, err := crm.NewCustomerProfile(tenantID, "CUST-001", "Jane Renter")
	require.NoError(t, err)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	logRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.CommunicationLog")).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"customer_id": customer.ID,
		"channel":     "phone",
		"subject":     "Late return",
		"body":        "Customer called to extend the rental by two days.",
		"logged_at":   time.Now().UTC(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/communications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	logRepo.AssertExpectations(t)
}
