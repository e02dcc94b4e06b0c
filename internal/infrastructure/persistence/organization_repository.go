package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements org.OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by its ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Organization, error) {
	var organization org.Organization
	if err := r.db.WithContext(ctx).First(&organization, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &organization, nil
}

// FindBySlug finds an organization by its slug
func (r *GormOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*org.Organization, error) {
	var organization org.Organization
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&organization).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &organization, nil
}

// FindAll finds organizations with pagination
func (r *GormOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*org.Organization], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&org.Organization{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var organizations []*org.Organization
	query := r.db.WithContext(ctx).Model(&org.Organization{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	if err := applyFilter(query, filter).Find(&organizations).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(organizations, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, organization *org.Organization) error {
	return r.db.WithContext(ctx).Save(organization).Error
}

// ExistsBySlug checks if an organization with the given slug exists
func (r *GormOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&org.Organization{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
