package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrganizationService handles tenant registration and profile management
type OrganizationService struct {
	orgRepo      org.OrganizationRepository
	settingsRepo org.SettingsRepository
	userRepo     org.UserRepository
	directory    *DirectoryService
	logger       *zap.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(
	orgRepo org.OrganizationRepository,
	settingsRepo org.SettingsRepository,
	userRepo org.UserRepository,
	directory *DirectoryService,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:      orgRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		directory:    directory,
		logger:       logger,
	}
}

// Register creates a new organization with default settings and an
// owner account
func (s *OrganizationService) Register(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	exists, err := s.orgRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Organization with this slug already exists")
	}

	organization, err := org.NewOrganization(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, organization); err != nil {
		return nil, err
	}

	settings := org.NewOrganizationSettings(organization.ID)
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	owner, err := org.NewUser(organization.ID, req.OwnerEmail, req.Password, req.OwnerName, org.RoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("Organization registered",
		zap.String("slug", organization.Slug),
		zap.String("organization_id", organization.ID.String()))

	response := ToOrganizationResponse(organization)
	return &response, nil
}

// GetByID retrieves an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationResponse, error) {
	organization, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOrganizationResponse(organization)
	return &response, nil
}

// Update updates the tenant profile and invalidates the directory cache
func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	organization, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := organization.Name
	email := organization.Email
	phone := organization.Phone
	address := organization.Address
	country := organization.Country
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.Country != nil {
		country = *req.Country
	}

	if err := organization.UpdateProfile(name, email, phone, address, country); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, organization); err != nil {
		return nil, err
	}

	s.directory.Invalidate(ctx, organization.Slug)

	response := ToOrganizationResponse(organization)
	return &response, nil
}

// SetLocale changes the tenant currency and timezone
func (s *OrganizationService) SetLocale(ctx context.Context, id uuid.UUID, currency, timezone string) error {
	organization, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := organization.SetLocale(currency, timezone); err != nil {
		return err
	}

	if err := s.orgRepo.Save(ctx, organization); err != nil {
		return err
	}

	s.directory.Invalidate(ctx, organization.Slug)
	return nil
}

// GetSettings retrieves tenant settings
func (s *OrganizationService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToSettingsResponse(settings)
	return &response, nil
}

// UpdateSettings changes tenant settings
func (s *OrganizationService) UpdateSettings(ctx context.Context, tenantID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.InvoicePrefix != nil || req.ContractPrefix != nil {
		invoicePrefix := settings.InvoicePrefix
		contractPrefix := settings.ContractPrefix
		if req.InvoicePrefix != nil {
			invoicePrefix = *req.InvoicePrefix
		}
		if req.ContractPrefix != nil {
			contractPrefix = *req.ContractPrefix
		}
		if err := settings.SetPrefixes(invoicePrefix, contractPrefix); err != nil {
			return nil, err
		}
	}

	if req.DefaultPageSize != nil {
		settings.DefaultPageSize = *req.DefaultPageSize
	}

	for key, value := range req.Extra {
		if err := settings.SetExtra(key, value); err != nil {
			return nil, err
		}
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	response := ToSettingsResponse(settings)
	return &response, nil
}

// Suspend blocks a tenant and evicts it from the directory cache
func (s *OrganizationService) Suspend(ctx context.Context, id uuid.UUID) error {
	organization, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	organization.Suspend()
	if err := s.orgRepo.Save(ctx, organization); err != nil {
		return err
	}

	s.directory.Invalidate(ctx, organization.Slug)
	s.logger.Warn("Organization suspended", zap.String("slug", organization.Slug))
	return nil
}
