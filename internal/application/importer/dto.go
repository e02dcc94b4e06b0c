package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
)

// =============================================================================
// Integration config DTOs
// =============================================================================

// CreateConfigRequest represents a request to connect an external catalog
type CreateConfigRequest struct {
	Provider       string     `json:"provider" binding:"required"`
	BaseURL        string     `json:"base_url" binding:"required"`
	ConsumerKey    string     `json:"consumer_key" binding:"required"`
	ConsumerSecret string     `json:"consumer_secret" binding:"required"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// UpdateConfigRequest represents a request to change connection credentials
type UpdateConfigRequest struct {
	BaseURL        string `json:"base_url" binding:"required"`
	ConsumerKey    string `json:"consumer_key" binding:"required"`
	ConsumerSecret string `json:"consumer_secret" binding:"required"`
}

// ConfigResponse represents an integration config in API responses.
// The consumer secret is never echoed back.
type ConfigResponse struct {
	ID          uuid.UUID  `json:"id"`
	Provider    string     `json:"provider"`
	BaseURL     string     `json:"base_url"`
	ConsumerKey string     `json:"consumer_key"`
	IsEnabled   bool       `json:"is_enabled"`
	LastSyncAt  *time.Time `json:"last_sync_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToConfigResponse converts a domain config to a response
func ToConfigResponse(c *integration.IntegrationConfig) ConfigResponse {
	return ConfigResponse{
		ID:          c.ID,
		Provider:    string(c.Provider),
		BaseURL:     c.BaseURL,
		ConsumerKey: maskKey(c.ConsumerKey),
		IsEnabled:   c.IsEnabled,
		LastSyncAt:  c.LastSyncAt,
		CreatedAt:   c.CreatedAt,
	}
}

func maskKey(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:6] + "***"
}

// =============================================================================
// Field mapping DTOs
// =============================================================================

// UpsertMappingRequest represents a request to map one vehicle field.
// SourceField names a plain external field, MetaKey and AttributeName
// pin the lookup to metadata or attributes.
type UpsertMappingRequest struct {
	TargetField   string `json:"target_field" binding:"required"`
	SourceField   string `json:"source_field" binding:"max=100"`
	MetaKey       string `json:"meta_key" binding:"max=100"`
	AttributeName string `json:"attribute_name" binding:"max=100"`
}

// MappingResponse represents a field mapping in API responses
type MappingResponse struct {
	ID            uuid.UUID `json:"id"`
	ConfigID      uuid.UUID `json:"config_id"`
	TargetField   string    `json:"target_field"`
	SourceField   string    `json:"source_field"`
	MetaKey       string    `json:"meta_key"`
	AttributeName string    `json:"attribute_name"`
}

// ToMappingResponse converts a domain mapping to a response
func ToMappingResponse(m *integration.FieldMapping) MappingResponse {
	return MappingResponse{
		ID:            m.ID,
		ConfigID:      m.ConfigID,
		TargetField:   string(m.TargetField),
		SourceField:   m.SourceField,
		MetaKey:       m.MetaKey,
		AttributeName: m.AttributeName,
	}
}

// =============================================================================
// Import job DTOs
// =============================================================================

// RunImportRequest represents a request to import the external catalog
type RunImportRequest struct {
	SkipDuplicates bool       `json:"skip_duplicates"`
	UpdateExisting bool       `json:"update_existing"`
	PageSize       int        `json:"page_size" binding:"omitempty,min=1,max=100"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// WrittenVehicleResponse identifies one vehicle a run created or updated
type WrittenVehicleResponse struct {
	ID           uuid.UUID `json:"id"`
	LicensePlate string    `json:"license_plate,omitempty"`
	Make         string    `json:"make,omitempty"`
	Model        string    `json:"model,omitempty"`
}

// ImportJobResponse represents an import job in API responses. Vehicles
// is only populated on the response of the run that wrote them; job
// history queries carry the counts alone.
type ImportJobResponse struct {
	ID         uuid.UUID                `json:"id"`
	ConfigID   uuid.UUID                `json:"config_id"`
	Status     string                   `json:"status"`
	Imported   int                      `json:"imported"`
	Updated    int                      `json:"updated"`
	Skipped    int                      `json:"skipped"`
	Failed     int                      `json:"failed"`
	Errors     []string                 `json:"errors"`
	Vehicles   []WrittenVehicleResponse `json:"vehicles,omitempty"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt *time.Time               `json:"finished_at"`
}

// ToImportJobResponse converts a domain job to a response
func ToImportJobResponse(j *integration.ImportJob) ImportJobResponse {
	return ImportJobResponse{
		ID:         j.ID,
		ConfigID:   j.ConfigID,
		Status:     string(j.Status),
		Imported:   j.Counts.Imported,
		Updated:    j.Counts.Updated,
		Skipped:    j.Counts.Skipped,
		Failed:     j.Counts.Failed,
		Errors:     j.Errors,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
	}
}

func toWrittenVehicles(vehicles []*fleet.Vehicle) []WrittenVehicleResponse {
	if len(vehicles) == 0 {
		return nil
	}
	written := make([]WrittenVehicleResponse, len(vehicles))
	for i, v := range vehicles {
		written[i] = WrittenVehicleResponse{
			ID:           v.ID,
			LicensePlate: v.LicensePlate,
			Make:         v.Make,
			Model:        v.Model,
		}
	}
	return written
}

// ResyncResponse reports what a targeted single-item re-sync did
type ResyncResponse struct {
	ExternalID string `json:"external_id"`
	Outcome    string `json:"outcome"`
	Problem    string `json:"problem,omitempty"`
}

// TestConnectionResponse reports whether the provider answered
type TestConnectionResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
