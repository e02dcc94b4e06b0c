package importer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/integration"
)

// MappingService manages the field mappings of an integration
type MappingService struct {
	mappingRepo integration.FieldMappingRepository
	configRepo  integration.ConfigRepository
}

// NewMappingService creates a new MappingService
func NewMappingService(mappingRepo integration.FieldMappingRepository, configRepo integration.ConfigRepository) *MappingService {
	return &MappingService{
		mappingRepo: mappingRepo,
		configRepo:  configRepo,
	}
}

// Upsert creates or replaces the mapping for one vehicle field
func (s *MappingService) Upsert(ctx context.Context, tenantID, configID uuid.UUID, req UpsertMappingRequest) (*MappingResponse, error) {
	if _, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID); err != nil {
		return nil, err
	}

	target := integration.VehicleField(req.TargetField)

	existing, err := s.mappingRepo.FindByConfig(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}
	for _, mapping := range existing {
		if mapping.TargetField == target {
			if err := mapping.Update(req.SourceField, req.MetaKey, req.AttributeName); err != nil {
				return nil, err
			}
			if err := s.mappingRepo.Save(ctx, mapping); err != nil {
				return nil, err
			}
			response := ToMappingResponse(mapping)
			return &response, nil
		}
	}

	mapping, err := integration.NewFieldMapping(tenantID, configID, target, req.SourceField, req.MetaKey, req.AttributeName)
	if err != nil {
		return nil, err
	}

	if err := s.mappingRepo.Save(ctx, mapping); err != nil {
		return nil, err
	}

	response := ToMappingResponse(mapping)
	return &response, nil
}

// List retrieves the mappings of an integration
func (s *MappingService) List(ctx context.Context, tenantID, configID uuid.UUID) ([]MappingResponse, error) {
	mappings, err := s.mappingRepo.FindByConfig(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	responses := make([]MappingResponse, len(mappings))
	for i, mapping := range mappings {
		responses[i] = ToMappingResponse(mapping)
	}

	return responses, nil
}

// MappableFields lists the vehicle fields a mapping may target
func (s *MappingService) MappableFields() []string {
	fields := integration.MappableFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// Delete removes a mapping
func (s *MappingService) Delete(ctx context.Context, tenantID, mappingID uuid.UUID) error {
	if _, err := s.mappingRepo.FindByID(ctx, mappingID); err != nil {
		return err
	}
	return s.mappingRepo.DeleteForTenant(ctx, tenantID, mappingID)
}
