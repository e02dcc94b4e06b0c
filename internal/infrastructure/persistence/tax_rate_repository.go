package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTaxRateRepository implements finance.TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// FindByID finds a tax rate by its ID
func (r *GormTaxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.TaxRate, error) {
	var rate finance.TaxRate
	if err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// FindByIDForTenant finds a tax rate by ID within a tenant
func (r *GormTaxRateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.TaxRate, error) {
	var rate finance.TaxRate
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// FindAllForTenant finds all tax rates for a tenant
func (r *GormTaxRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.TaxRate, error) {
	var rates []*finance.TaxRate
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindDefaultForTenant finds the default tax rate for a tenant
func (r *GormTaxRateRepository) FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*finance.TaxRate, error) {
	var rate finance.TaxRate
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// Save creates or updates a tax rate
func (r *GormTaxRateRepository) Save(ctx context.Context, rate *finance.TaxRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// DeleteForTenant deletes a tax rate within a tenant
func (r *GormTaxRateRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.TaxRate{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
