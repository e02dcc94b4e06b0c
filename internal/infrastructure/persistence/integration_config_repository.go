package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormConfigRepository implements integration.ConfigRepository using GORM
type GormConfigRepository struct {
	db *gorm.DB
}

// NewGormConfigRepository creates a new GormConfigRepository
func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

// FindByID finds an integration config by its ID
func (r *GormConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.IntegrationConfig, error) {
	var config integration.IntegrationConfig
	if err := r.db.WithContext(ctx).First(&config, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindByIDForTenant finds an integration config by ID within a tenant
func (r *GormConfigRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*integration.IntegrationConfig, error) {
	var config integration.IntegrationConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindByProvider finds the config for a provider within a tenant
func (r *GormConfigRepository) FindByProvider(ctx context.Context, tenantID uuid.UUID, provider integration.ProviderType) (*integration.IntegrationConfig, error) {
	var config integration.IntegrationConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND provider = ?", tenantID, provider).
		First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindAllForTenant finds all integration configs for a tenant
func (r *GormConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*integration.IntegrationConfig, error) {
	var configs []*integration.IntegrationConfig
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Save creates or updates an integration config
func (r *GormConfigRepository) Save(ctx context.Context, config *integration.IntegrationConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// DeleteForTenant deletes an integration config within a tenant
func (r *GormConfigRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&integration.IntegrationConfig{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
