package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSettingsRepository implements org.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindForTenant finds the settings row for a tenant
func (r *GormSettingsRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID) (*org.OrganizationSettings, error) {
	var settings org.OrganizationSettings
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates settings
func (r *GormSettingsRepository) Save(ctx context.Context, settings *org.OrganizationSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
