package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerProfileRepository implements crm.CustomerProfileRepository using GORM
type GormCustomerProfileRepository struct {
	db *gorm.DB
}

// NewGormCustomerProfileRepository creates a new GormCustomerProfileRepository
func NewGormCustomerProfileRepository(db *gorm.DB) *GormCustomerProfileRepository {
	return &GormCustomerProfileRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.CustomerProfile, error) {
	var customer crm.CustomerProfile
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerProfileRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.CustomerProfile, error) {
	var customer crm.CustomerProfile
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByCode finds a customer by its code within a tenant
func (r *GormCustomerProfileRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*crm.CustomerProfile, error) {
	var customer crm.CustomerProfile
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForTenant finds all customers for a tenant
func (r *GormCustomerProfileRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.CustomerProfile, error) {
	var customers []crm.CustomerProfile
	query := r.conditions(r.db.WithContext(ctx).Model(&crm.CustomerProfile{}).Where("tenant_id = ?", tenantID), filter)

	if err := applyFilter(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerProfileRepository) Save(ctx context.Context, customer *crm.CustomerProfile) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// DeleteForTenant deletes a customer within a tenant
func (r *GormCustomerProfileRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&crm.CustomerProfile{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts customers for a tenant
func (r *GormCustomerProfileRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conditions(r.db.WithContext(ctx).Model(&crm.CustomerProfile{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts customers by status for a tenant
func (r *GormCustomerProfileRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status crm.CustomerStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.CustomerProfile{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a customer with the given code exists in the tenant
func (r *GormCustomerProfileRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.CustomerProfile{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if a customer with the given email exists in the tenant
func (r *GormCustomerProfileRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.CustomerProfile{}).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// conditions applies search and field filters without pagination
func (r *GormCustomerProfileRepository) conditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}
