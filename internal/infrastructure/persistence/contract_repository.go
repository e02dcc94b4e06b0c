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

// GormContractRepository implements crm.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Contract, error) {
	var contract crm.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// FindByIDForTenant finds a contract by ID within a tenant
func (r *GormContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.Contract, error) {
	var contract crm.Contract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// FindByNumber finds a contract by number within a tenant
func (r *GormContractRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*crm.Contract, error) {
	var contract crm.Contract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, strings.ToUpper(number)).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// FindAllForTenant finds all contracts for a tenant with filtering
func (r *GormContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter crm.ContractFilter) ([]crm.Contract, error) {
	var contracts []crm.Contract
	query := r.conditions(r.db.WithContext(ctx).Model(&crm.Contract{}).Where("tenant_id = ?", tenantID), filter)

	if err := applyFilter(query, filter.Filter).Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindByCustomer finds all contracts for a customer
func (r *GormContractRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]crm.Contract, error) {
	var contracts []crm.Contract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("start_date DESC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, contract *crm.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// DeleteForTenant deletes a contract within a tenant
func (r *GormContractRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&crm.Contract{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts contracts for a tenant with filtering
func (r *GormContractRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter crm.ContractFilter) (int64, error) {
	var count int64
	query := r.conditions(r.db.WithContext(ctx).Model(&crm.Contract{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormContractRepository) conditions(query *gorm.DB, filter crm.ContractFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartFrom != nil {
		query = query.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		query = query.Where("start_date <= ?", *filter.StartTo)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ?", pattern)
	}
	return query
}
