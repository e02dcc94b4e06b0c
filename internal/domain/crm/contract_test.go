package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestContract(t *testing.T) *Contract {
	t.Helper()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	contract, err := NewContract(uuid.New(), "CNT-2025-001", uuid.New(), uuid.New(), start, end, decimal.NewFromInt(40))
	assert.NoError(t, err)
	return contract
}

func TestNewContract(t *testing.T) {
	t.Run("computes total from daily rate and days", func(t *testing.T) {
		contract := newTestContract(t)
		assert.Equal(t, ContractStatusDraft, contract.Status)
		assert.True(t, contract.TotalAmount.Equal(decimal.NewFromInt(200)), "got %s", contract.TotalAmount)
	})

	t.Run("sub-day rentals count as one day", func(t *testing.T) {
		start := time.Now()
		contract, err := NewContract(uuid.New(), "CNT-1", uuid.New(), uuid.New(), start, start.Add(3*time.Hour), decimal.NewFromInt(40))
		assert.NoError(t, err)
		assert.True(t, contract.TotalAmount.Equal(decimal.NewFromInt(40)))
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.New(), "CNT-1", uuid.New(), uuid.New(), start, start.AddDate(0, 0, -1), decimal.NewFromInt(40))
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		start := time.Now()
		_, err := NewContract(uuid.New(), "CNT-1", uuid.New(), uuid.New(), start, start.AddDate(0, 0, 1), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestContractTransitions(t *testing.T) {
	t.Run("draft to active to completed", func(t *testing.T) {
		contract := newTestContract(t)
		assert.NoError(t, contract.Activate())
		assert.NoError(t, contract.Complete())
		assert.True(t, contract.Status.IsFinal())
	})

	t.Run("cannot complete a draft", func(t *testing.T) {
		contract := newTestContract(t)
		assert.Error(t, contract.Complete())
	})

	t.Run("cancel is allowed from draft and active", func(t *testing.T) {
		contract := newTestContract(t)
		assert.NoError(t, contract.Cancel())
		assert.Error(t, contract.Cancel())
	})

	t.Run("finalised contract rejects rate changes", func(t *testing.T) {
		contract := newTestContract(t)
		assert.NoError(t, contract.Cancel())
		assert.Error(t, contract.SetDailyRate(decimal.NewFromInt(50)))
	})
}
