package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindByIDForTenant finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForTenant finds expenses for a tenant with filtering and pagination
func (r *GormExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.RecordFilter) (*shared.Paginated[*finance.Expense], error) {
	var total int64
	countQuery := r.conditions(r.db.WithContext(ctx).Model(&finance.Expense{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var expenses []*finance.Expense
	query := r.conditions(r.db.WithContext(ctx).Model(&finance.Expense{}).Where("tenant_id = ?", tenantID), filter)
	if err := applyFilter(query, filter.Filter).Find(&expenses).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(expenses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// DeleteForTenant deletes an expense within a tenant
func (r *GormExpenseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) conditions(query *gorm.DB, filter finance.RecordFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where("incurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("incurred_at <= ?", *filter.To)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	return query
}
