package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by number within a tenant
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, strings.ToUpper(number)).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForTenant finds invoices for a tenant with filtering and pagination
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.InvoiceFilter) (*shared.Paginated[*finance.Invoice], error) {
	var total int64
	countQuery := r.conditions(r.db.WithContext(ctx).Model(&finance.Invoice{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var invoices []*finance.Invoice
	query := r.conditions(r.db.WithContext(ctx).Model(&finance.Invoice{}).Where("tenant_id = ?", tenantID), filter)
	if err := applyFilter(query, filter.Filter).Find(&invoices).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(invoices, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// DeleteForTenant deletes an invoice within a tenant
func (r *GormInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Invoice{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByNumber checks if an invoice with the given number exists in the tenant
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&finance.Invoice{}).
		Where("tenant_id = ? AND number = ?", tenantID, strings.ToUpper(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInvoiceRepository) conditions(query *gorm.DB, filter finance.InvoiceFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("issue_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("issue_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ?", pattern)
	}
	return query
}
