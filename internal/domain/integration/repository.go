package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// ConfigRepository persists integration configs
type ConfigRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IntegrationConfig, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*IntegrationConfig, error)
	FindByProvider(ctx context.Context, tenantID uuid.UUID, provider ProviderType) (*IntegrationConfig, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*IntegrationConfig, error)
	Save(ctx context.Context, config *IntegrationConfig) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// FieldMappingRepository persists field mappings
type FieldMappingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FieldMapping, error)
	FindByConfig(ctx context.Context, tenantID, configID uuid.UUID) ([]*FieldMapping, error)
	Save(ctx context.Context, mapping *FieldMapping) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ImportJobRepository persists import jobs
type ImportJobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ImportJob, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ImportJob, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ImportJob], error)
	FindStale(ctx context.Context, olderThan time.Time) ([]*ImportJob, error)
	Save(ctx context.Context, job *ImportJob) error
}
