package importer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConnectionService manages external catalog connections
type ConnectionService struct {
	configRepo integration.ConfigRepository
	providers  ProviderFactory
	logger     *zap.Logger
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(configRepo integration.ConfigRepository, providers ProviderFactory, logger *zap.Logger) *ConnectionService {
	return &ConnectionService{
		configRepo: configRepo,
		providers:  providers,
		logger:     logger,
	}
}

// Create connects a tenant to an external catalog. One connection per
// provider per tenant.
func (s *ConnectionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateConfigRequest) (*ConfigResponse, error) {
	provider := integration.ProviderType(req.Provider)

	existing, err := s.configRepo.FindByProvider(ctx, tenantID, provider)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Integration for this provider already exists")
	}

	config, err := integration.NewIntegrationConfig(tenantID, provider, req.BaseURL, req.ConsumerKey, req.ConsumerSecret)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		config.CreatedBy = req.CreatedBy
	}

	if err := s.configRepo.Save(ctx, config); err != nil {
		return nil, err
	}

	s.logger.Info("Integration connected",
		zap.String("provider", req.Provider),
		zap.String("organization_id", tenantID.String()))

	response := ToConfigResponse(config)
	return &response, nil
}

// List retrieves every integration for a tenant
func (s *ConnectionService) List(ctx context.Context, tenantID uuid.UUID) ([]ConfigResponse, error) {
	configs, err := s.configRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]ConfigResponse, len(configs))
	for i, config := range configs {
		responses[i] = ToConfigResponse(config)
	}

	return responses, nil
}

// Update replaces the connection credentials
func (s *ConnectionService) Update(ctx context.Context, tenantID, configID uuid.UUID, req UpdateConfigRequest) (*ConfigResponse, error) {
	config, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	if err := config.UpdateCredentials(req.BaseURL, req.ConsumerKey, req.ConsumerSecret); err != nil {
		return nil, err
	}

	if err := s.configRepo.Save(ctx, config); err != nil {
		return nil, err
	}

	response := ToConfigResponse(config)
	return &response, nil
}

// SetEnabled turns an integration on or off
func (s *ConnectionService) SetEnabled(ctx context.Context, tenantID, configID uuid.UUID, enabled bool) error {
	config, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID)
	if err != nil {
		return err
	}

	if enabled {
		config.Enable()
	} else {
		config.Disable()
	}

	return s.configRepo.Save(ctx, config)
}

// Delete removes an integration and its credentials
func (s *ConnectionService) Delete(ctx context.Context, tenantID, configID uuid.UUID) error {
	if _, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID); err != nil {
		return err
	}
	return s.configRepo.DeleteForTenant(ctx, tenantID, configID)
}

// Test checks whether the provider answers with the stored credentials
func (s *ConnectionService) Test(ctx context.Context, tenantID, configID uuid.UUID) (*TestConnectionResponse, error) {
	config, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	provider, err := s.providers.New(config)
	if err != nil {
		return nil, err
	}

	if err := provider.Ping(ctx); err != nil {
		return &TestConnectionResponse{OK: false, Message: err.Error()}, nil
	}

	return &TestConnectionResponse{OK: true}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
