package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCustomerProfile(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active customer with uppercased code", func(t *testing.T) {
		customer, err := NewCustomerProfile(tenantID, "cust-001", "Γιώργος Παπαδόπουλος")
		assert.NoError(t, err)
		assert.Equal(t, "CUST-001", customer.Code)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Equal(t, tenantID, customer.TenantID)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewCustomerProfile(tenantID, "", "Name")
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewCustomerProfile(tenantID, "cust 001", "Name")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomerProfile(tenantID, "CUST-001", "")
		assert.Error(t, err)
	})
}

func TestCustomerProfileSetContact(t *testing.T) {
	customer, _ := NewCustomerProfile(uuid.New(), "CUST-001", "Maria K")

	t.Run("accepts valid phone and email", func(t *testing.T) {
		err := customer.SetContact("+30 210 1234567", "maria@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "maria@example.com", customer.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		err := customer.SetContact("", "not-an-email")
		assert.Error(t, err)
	})

	t.Run("rejects phone with letters", func(t *testing.T) {
		err := customer.SetContact("call me", "")
		assert.Error(t, err)
	})
}

func TestCustomerProfileLifecycle(t *testing.T) {
	customer, _ := NewCustomerProfile(uuid.New(), "CUST-001", "Maria K")

	t.Run("deactivate then activate", func(t *testing.T) {
		assert.NoError(t, customer.Deactivate())
		assert.Equal(t, CustomerStatusInactive, customer.Status)
		assert.False(t, customer.IsActive())

		assert.NoError(t, customer.Activate())
		assert.True(t, customer.IsActive())
	})

	t.Run("double deactivate fails", func(t *testing.T) {
		assert.NoError(t, customer.Deactivate())
		assert.Error(t, customer.Deactivate())
	})
}

func TestCustomerProfileSetAttributes(t *testing.T) {
	customer, _ := NewCustomerProfile(uuid.New(), "CUST-001", "Maria K")

	assert.NoError(t, customer.SetAttributes(`{"vip": true}`))
	assert.Error(t, customer.SetAttributes(`[1,2,3]`))
	assert.NoError(t, customer.SetAttributes(""))
	assert.Equal(t, "{}", customer.Attributes)
}
