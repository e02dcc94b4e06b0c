package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRevenueRepository implements finance.RevenueRepository using GORM
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// FindByID finds a revenue record by its ID
func (r *GormRevenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Revenue, error) {
	var revenue finance.Revenue
	if err := r.db.WithContext(ctx).First(&revenue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &revenue, nil
}

// FindByIDForTenant finds a revenue record by ID within a tenant
func (r *GormRevenueRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Revenue, error) {
	var revenue finance.Revenue
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&revenue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &revenue, nil
}

// FindAllForTenant finds revenue records for a tenant with filtering and pagination
func (r *GormRevenueRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.RecordFilter) (*shared.Paginated[*finance.Revenue], error) {
	var total int64
	countQuery := r.conditions(r.db.WithContext(ctx).Model(&finance.Revenue{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var revenues []*finance.Revenue
	query := r.conditions(r.db.WithContext(ctx).Model(&finance.Revenue{}).Where("tenant_id = ?", tenantID), filter)
	if err := applyFilter(query, filter.Filter).Find(&revenues).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(revenues, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates a revenue record
func (r *GormRevenueRepository) Save(ctx context.Context, revenue *finance.Revenue) error {
	return r.db.WithContext(ctx).Save(revenue).Error
}

// DeleteForTenant deletes a revenue record within a tenant
func (r *GormRevenueRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Revenue{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormRevenueRepository) conditions(query *gorm.DB, filter finance.RecordFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where("received_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("received_at <= ?", *filter.To)
	}
	if source, ok := filter.Filters["source"]; ok {
		query = query.Where("source = ?", source)
	}
	return query
}
