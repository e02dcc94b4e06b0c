package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCommunicationLogRepository implements crm.CommunicationLogRepository using GORM
type GormCommunicationLogRepository struct {
	db *gorm.DB
}

// NewGormCommunicationLogRepository creates a new GormCommunicationLogRepository
func NewGormCommunicationLogRepository(db *gorm.DB) *GormCommunicationLogRepository {
	return &GormCommunicationLogRepository{db: db}
}

// FindByIDForTenant finds a log entry by ID within a tenant
func (r *GormCommunicationLogRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.CommunicationLog, error) {
	var entry crm.CommunicationLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByCustomer finds all log entries for a customer, newest first
func (r *GormCommunicationLogRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]crm.CommunicationLog, error) {
	var entries []crm.CommunicationLog
	query := r.db.WithContext(ctx).
		Model(&crm.CommunicationLog{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)

	if err := applyFilter(query, filter).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates a log entry
func (r *GormCommunicationLogRepository) Save(ctx context.Context, log *crm.CommunicationLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// CountByCustomer counts log entries for a customer
func (r *GormCommunicationLogRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.CommunicationLog{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
