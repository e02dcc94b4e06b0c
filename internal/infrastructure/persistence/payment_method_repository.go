package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements finance.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by its ID
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	var method finance.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByIDForTenant finds a payment method by ID within a tenant
func (r *GormPaymentMethodRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentMethod, error) {
	var method finance.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindAllForTenant finds all payment methods for a tenant
func (r *GormPaymentMethodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.PaymentMethod, error) {
	var methods []*finance.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("label ASC").
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *finance.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// DeleteForTenant deletes a payment method within a tenant
func (r *GormPaymentMethodRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.PaymentMethod{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
