package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormImportJobRepository implements integration.ImportJobRepository using GORM
type GormImportJobRepository struct {
	db *gorm.DB
}

// NewGormImportJobRepository creates a new GormImportJobRepository
func NewGormImportJobRepository(db *gorm.DB) *GormImportJobRepository {
	return &GormImportJobRepository{db: db}
}

// FindByID finds an import job by its ID
func (r *GormImportJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ImportJob, error) {
	var job integration.ImportJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindByIDForTenant finds an import job by ID within a tenant
func (r *GormImportJobRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.ImportJob, error) {
	var job integration.ImportJob
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindAllForTenant finds import jobs for a tenant with pagination
func (r *GormImportJobRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*integration.ImportJob], error) {
	var total int64
	countQuery := r.conditions(r.db.WithContext(ctx).Model(&integration.ImportJob{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var jobs []*integration.ImportJob
	query := r.conditions(r.db.WithContext(ctx).Model(&integration.ImportJob{}).Where("tenant_id = ?", tenantID), filter)
	if err := applyFilter(query, filter).Find(&jobs).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(jobs, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindStale finds running jobs started before the given time
func (r *GormImportJobRepository) FindStale(ctx context.Context, olderThan time.Time) ([]*integration.ImportJob, error) {
	var jobs []*integration.ImportJob
	if err := r.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", integration.ImportJobRunning, olderThan).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Save creates or updates an import job
func (r *GormImportJobRepository) Save(ctx context.Context, job *integration.ImportJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *GormImportJobRepository) conditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if configID, ok := filter.Filters["config_id"]; ok {
		query = query.Where("config_id = ?", configID)
	}
	return query
}
