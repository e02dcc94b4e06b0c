package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements finance.FinancialTransactionRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	var tx finance.FinancialTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForTenant finds ledger entries for a tenant with filtering and pagination
func (r *GormLedgerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.TransactionFilter) (*shared.Paginated[*finance.FinancialTransaction], error) {
	var total int64
	countQuery := r.conditions(r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []*finance.FinancialTransaction
	query := r.conditions(r.db.WithContext(ctx).Model(&finance.FinancialTransaction{}).Where("tenant_id = ?", tenantID), filter)
	if err := applyFilter(query, filter.Filter).Find(&entries).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(entries, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerRepository) Save(ctx context.Context, tx *finance.FinancialTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// TotalsForPeriod sums income and expense entries for a period
func (r *GormLedgerRepository) TotalsForPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*finance.TransactionTotals, error) {
	type row struct {
		Type  finance.TransactionType
		Total decimal.Decimal
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&finance.FinancialTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND occurred_at >= ? AND occurred_at <= ?", tenantID, from, to).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := &finance.TransactionTotals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, r := range rows {
		switch r.Type {
		case finance.TransactionTypeIncome:
			totals.Income = r.Total
		case finance.TransactionTypeExpense:
			totals.Expense = r.Total
		}
	}
	return totals, nil
}

func (r *GormLedgerRepository) conditions(query *gorm.DB, filter finance.TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	return query
}
