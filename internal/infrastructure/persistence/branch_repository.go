package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBranchRepository implements org.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	var branch org.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByIDForTenant finds a branch by ID within a tenant
func (r *GormBranchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*org.Branch, error) {
	var branch org.Branch
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindAllForTenant finds all branches for a tenant
func (r *GormBranchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*org.Branch, error) {
	var branches []*org.Branch
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// DeleteForTenant deletes a branch within a tenant
func (r *GormBranchRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&org.Branch{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
