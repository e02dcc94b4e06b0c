package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewInvoice(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 14)

	t.Run("creates draft invoice with computed tax", func(t *testing.T) {
		invoice, err := NewInvoice(tenantID, "INV-2026-001", customerID, issue, due,
			decimal.NewFromInt(200), decimal.NewFromInt(20))

		assert.NoError(t, err)
		assert.Equal(t, InvoiceStatusDraft, invoice.Status)
		assert.True(t, invoice.TaxAmount.Equal(decimal.NewFromInt(40)))
		assert.True(t, invoice.Total.Equal(decimal.NewFromInt(240)))
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "", customerID, issue, due,
			decimal.NewFromInt(100), decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("rejects due date before issue date", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "INV-2026-002", customerID, issue, issue.AddDate(0, 0, -1),
			decimal.NewFromInt(100), decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("rejects negative subtotal", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "INV-2026-003", customerID, issue, due,
			decimal.NewFromInt(-5), decimal.Zero)

		assert.Error(t, err)
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	tenantID := uuid.New()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 7)

	newDraft := func(t *testing.T) *Invoice {
		invoice, err := NewInvoice(tenantID, "INV-2026-010", uuid.New(), issue, due,
			decimal.NewFromInt(100), decimal.NewFromInt(10))
		assert.NoError(t, err)
		return invoice
	}

	t.Run("issue then pay", func(t *testing.T) {
		invoice := newDraft(t)

		assert.NoError(t, invoice.Issue())
		assert.Equal(t, InvoiceStatusIssued, invoice.Status)

		assert.NoError(t, invoice.MarkPaid())
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})

	t.Run("cannot pay a draft", func(t *testing.T) {
		invoice := newDraft(t)

		err := invoice.MarkPaid()

		assert.Error(t, err)
	})

	t.Run("cannot void a paid invoice", func(t *testing.T) {
		invoice := newDraft(t)
		assert.NoError(t, invoice.Issue())
		assert.NoError(t, invoice.MarkPaid())

		err := invoice.Void()

		assert.Error(t, err)
	})

	t.Run("overdue only when issued and past due", func(t *testing.T) {
		invoice := newDraft(t)
		after := due.AddDate(0, 0, 1)

		assert.False(t, invoice.IsOverdue(after))

		assert.NoError(t, invoice.Issue())
		assert.True(t, invoice.IsOverdue(after))
		assert.False(t, invoice.IsOverdue(issue))
	})
}

func TestFinancialTransactionSignedAmount(t *testing.T) {
	tenantID := uuid.New()
	now := time.Now()

	income, err := NewFinancialTransaction(tenantID, TransactionTypeIncome,
		decimal.NewFromInt(50), now, ReferenceTypeRevenue, nil, "rental payment")
	assert.NoError(t, err)
	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(50)))

	expense, err := NewFinancialTransaction(tenantID, TransactionTypeExpense,
		decimal.NewFromInt(30), now, ReferenceTypeExpense, nil, "fuel")
	assert.NoError(t, err)
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-30)))
}
