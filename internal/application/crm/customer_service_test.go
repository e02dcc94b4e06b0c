package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerProfileRepository is a mock implementation of CustomerProfileRepository
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

// MockContractRepository is a mock implementation of ContractRepository
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

// =============================================================================
// Tests
// =============================================================================

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates customer with contact details", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))

		repo.On("ExistsByCode", ctx, tenantID, "CUST-001").Return(false, nil)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.CustomerProfile")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateCustomerRequest{
			Code:     "cust-001",
			FullName: "Jane Cooper",
			Email:    "jane@example.com",
			Phone:    "+30 210 1234567",
		})

		assert.NoError(t, err)
		assert.Equal(t, "CUST-001", resp.Code)
		assert.Equal(t, "Jane Cooper", resp.FullName)
		assert.Equal(t, "active", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))

		repo.On("ExistsByCode", ctx, tenantID, "CUST-001").Return(true, nil)

		_, err := service.Create(ctx, tenantID, CreateCustomerRequest{
			Code:     "CUST-001",
			FullName: "Jane Cooper",
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))

		repo.On("ExistsByCode", ctx, tenantID, "CUST-002").Return(false, nil)
		repo.On("ExistsByEmail", ctx, tenantID, "jane@example.com").Return(true, nil)

		_, err := service.Create(ctx, tenantID, CreateCustomerRequest{
			Code:     "CUST-002",
			FullName: "Jane Cooper",
			Email:    "jane@example.com",
		})

		assert.Error(t, err)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))

		repo.On("ExistsByCode", ctx, tenantID, "CUST-003").Return(false, errors.New("db down"))

		_, err := service.Create(ctx, tenantID, CreateCustomerRequest{
			Code:     "CUST-003",
			FullName: "Jane Cooper",
		})

		assert.Error(t, err)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newCustomer := func(t *testing.T) *crm.CustomerProfile {
		customer, err := crm.NewCustomerProfile(tenantID, "CUST-010", "Old Name")
		assert.NoError(t, err)
		return customer
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))
		customer := newCustomer(t)

		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		name := "New Name"
		city := "Athens"
		resp, err := service.Update(ctx, tenantID, customer.ID, UpdateCustomerRequest{
			FullName: &name,
			City:     &city,
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.FullName)
		assert.Equal(t, "Athens", resp.City)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))
		missing := uuid.New()

		repo.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, tenantID, missing, UpdateCustomerRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deactivate then activate", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		service := NewCustomerService(repo, new(MockContractRepository))
		customer, err := crm.NewCustomerProfile(tenantID, "CUST-020", "Jane Cooper")
		assert.NoError(t, err)

		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		assert.NoError(t, service.Deactivate(ctx, tenantID, customer.ID))
		assert.False(t, customer.IsActive())

		assert.NoError(t, service.Activate(ctx, tenantID, customer.ID))
		assert.True(t, customer.IsActive())
	})
}

func TestCustomerServiceStatistics(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("counts customers and folds contract totals", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		contracts := new(MockContractRepository)
		service := NewCustomerService(repo, contracts)

		repo.On("CountByStatus", ctx, tenantID, crm.CustomerStatusActive).Return(int64(3), nil)
		repo.On("CountByStatus", ctx, tenantID, crm.CustomerStatusInactive).Return(int64(1), nil)
		contracts.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("crm.ContractFilter")).Return([]crm.Contract{
			{Status: crm.ContractStatusActive, TotalAmount: decimal.NewFromInt(300)},
			{Status: crm.ContractStatusActive, TotalAmount: decimal.NewFromInt(150)},
			{Status: crm.ContractStatusCompleted, TotalAmount: decimal.NewFromInt(90)},
		}, nil)

		stats, err := service.Statistics(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.ActiveCustomers)
		assert.Equal(t, int64(1), stats.InactiveCustomers)
		assert.Equal(t, int64(4), stats.TotalCustomers)
		assert.True(t, stats.ContractedAmount.Equal(decimal.NewFromInt(540)))
		assert.True(t, stats.ByContractStatus["active"].Equal(decimal.NewFromInt(450)))
		assert.True(t, stats.ByContractStatus["completed"].Equal(decimal.NewFromInt(90)))
		repo.AssertExpectations(t)
		contracts.AssertExpectations(t)
	})

	t.Run("tenant without contracts reports zero value", func(t *testing.T) {
		repo := new(MockCustomerProfileRepository)
		contracts := new(MockContractRepository)
		service := NewCustomerService(repo, contracts)

		repo.On("CountByStatus", ctx, tenantID, crm.CustomerStatusActive).Return(int64(0), nil)
		repo.On("CountByStatus", ctx, tenantID, crm.CustomerStatusInactive).Return(int64(0), nil)
		contracts.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("crm.ContractFilter")).Return([]crm.Contract{}, nil)

		stats, err := service.Statistics(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalCustomers)
		assert.True(t, stats.ContractedAmount.IsZero())
		assert.Empty(t, stats.ByContractStatus)
	})
}
