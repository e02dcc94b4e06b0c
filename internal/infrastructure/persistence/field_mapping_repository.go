package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFieldMappingRepository implements integration.FieldMappingRepository using GORM
type GormFieldMappingRepository struct {
	db *gorm.DB
}

// NewGormFieldMappingRepository creates a new GormFieldMappingRepository
func NewGormFieldMappingRepository(db *gorm.DB) *GormFieldMappingRepository {
	return &GormFieldMappingRepository{db: db}
}

// FindByID finds a field mapping by its ID
func (r *GormFieldMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.FieldMapping, error) {
	var mapping integration.FieldMapping
	if err := r.db.WithContext(ctx).First(&mapping, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByConfig finds all field mappings for a config within a tenant
func (r *GormFieldMappingRepository) FindByConfig(ctx context.Context, tenantID, configID uuid.UUID) ([]*integration.FieldMapping, error) {
	var mappings []*integration.FieldMapping
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND config_id = ?", tenantID, configID).
		Order("target_field ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Save creates or updates a field mapping
func (r *GormFieldMappingRepository) Save(ctx context.Context, mapping *integration.FieldMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// DeleteForTenant deletes a field mapping within a tenant
func (r *GormFieldMappingRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&integration.FieldMapping{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
