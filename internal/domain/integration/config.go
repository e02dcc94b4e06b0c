package integration

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// ProviderType identifies an external catalog platform
type ProviderType string

const (
	ProviderWooCommerce ProviderType = "woocommerce"
)

// IsValid returns true if the provider type is supported
func (p ProviderType) IsValid() bool {
	return p == ProviderWooCommerce
}

// IntegrationConfig stores a tenant's connection to an external catalog
type IntegrationConfig struct {
	shared.TenantAggregateRoot
	Provider       ProviderType `gorm:"type:varchar(30);not null"`
	BaseURL        string       `gorm:"type:varchar(500);not null"`
	ConsumerKey    string       `gorm:"type:varchar(255);not null"`
	ConsumerSecret string       `gorm:"type:varchar(255);not null"`
	IsEnabled      bool         `gorm:"not null;default:true"`
	LastSyncAt     *time.Time
}

// TableName returns the table name for GORM
func (IntegrationConfig) TableName() string {
	return "integration_configs"
}

// NewIntegrationConfig creates a new enabled integration config. The
// credentials are validated as a whole, all problems are reported.
func NewIntegrationConfig(tenantID uuid.UUID, provider ProviderType, baseURL, consumerKey, consumerSecret string) (*IntegrationConfig, error) {
	cfg := &IntegrationConfig{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Provider:            provider,
		BaseURL:             strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ConsumerKey:         strings.TrimSpace(consumerKey),
		ConsumerSecret:      strings.TrimSpace(consumerSecret),
		IsEnabled:           true,
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, NewValidationError(problems)
	}

	return cfg, nil
}

// Validate checks the config and returns every problem found rather
// than stopping at the first one
func (c *IntegrationConfig) Validate() []string {
	var problems []string

	if !c.Provider.IsValid() {
		problems = append(problems, "unsupported provider type")
	}

	if c.BaseURL == "" {
		problems = append(problems, "base URL is required")
	} else {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			problems = append(problems, "base URL must use http or https")
		} else if u.Host == "" {
			problems = append(problems, "base URL must include a host")
		}
	}

	if c.ConsumerKey == "" {
		problems = append(problems, "consumer key is required")
	}
	if c.ConsumerSecret == "" {
		problems = append(problems, "consumer secret is required")
	}

	return problems
}

// UpdateCredentials replaces the connection details
func (c *IntegrationConfig) UpdateCredentials(baseURL, consumerKey, consumerSecret string) error {
	next := *c
	next.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	next.ConsumerKey = strings.TrimSpace(consumerKey)
	next.ConsumerSecret = strings.TrimSpace(consumerSecret)

	if problems := next.Validate(); len(problems) > 0 {
		return NewValidationError(problems)
	}

	c.BaseURL = next.BaseURL
	c.ConsumerKey = next.ConsumerKey
	c.ConsumerSecret = next.ConsumerSecret
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkSynced stamps the last successful sync time
func (c *IntegrationConfig) MarkSynced(at time.Time) {
	c.LastSyncAt = &at
	c.UpdatedAt = time.Now()
}

// Disable turns the integration off without deleting credentials
func (c *IntegrationConfig) Disable() {
	c.IsEnabled = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Enable turns the integration back on
func (c *IntegrationConfig) Enable() {
	c.IsEnabled = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
