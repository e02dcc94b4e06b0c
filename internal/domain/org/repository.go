package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// OrganizationRepository persists organizations
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Organization], error)
	Save(ctx context.Context, organization *Organization) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// SettingsRepository persists organization settings
type SettingsRepository interface {
	FindForTenant(ctx context.Context, tenantID uuid.UUID) (*OrganizationSettings, error)
	Save(ctx context.Context, settings *OrganizationSettings) error
}

// BranchRepository persists branches
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Branch, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Branch, error)
	Save(ctx context.Context, branch *Branch) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*User], error)
	Save(ctx context.Context, user *User) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}
