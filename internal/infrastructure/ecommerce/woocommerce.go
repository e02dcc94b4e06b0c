package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from the WooCommerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// defaultTimeout is used when the caller does not supply one
const defaultTimeout = 30 * time.Second

// productsPath is the WooCommerce REST v3 products collection
const productsPath = "/wp-json/wc/v3/products"

// WooCommerceProvider reads a store's product catalog over the
// WooCommerce REST API. Requests authenticate with HTTP Basic auth
// using the store's consumer key and secret.
type WooCommerceProvider struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
}

// NewWooCommerceProvider creates a provider from stored connection
// credentials
func NewWooCommerceProvider(config *integration.IntegrationConfig, timeout time.Duration) (*WooCommerceProvider, error) {
	if problems := config.Validate(); len(problems) > 0 {
		return nil, integration.NewValidationError(problems)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &WooCommerceProvider{
		baseURL:        config.BaseURL,
		consumerKey:    config.ConsumerKey,
		consumerSecret: config.ConsumerSecret,
		httpClient:     &http.Client{Timeout: timeout},
	}, nil
}

// FetchPage retrieves one page of products, ordered by product ID so
// repeated walks see a stable sequence
func (p *WooCommerceProvider) FetchPage(ctx context.Context, page, pageSize int) ([]integration.ExternalCatalogItem, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(pageSize))
	query.Set("orderby", "id")
	query.Set("order", "asc")

	body, status, err := p.doGet(ctx, productsPath, query)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrProviderUnavailable, status)
	}

	var products []wooProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: unexpected products payload: %v", integration.ErrProviderUnavailable, err)
	}

	items := make([]integration.ExternalCatalogItem, len(products))
	for i, product := range products {
		items[i] = product.toCatalogItem()
	}
	return items, nil
}

// FetchItem retrieves a single product by its external ID
func (p *WooCommerceProvider) FetchItem(ctx context.Context, externalID string) (*integration.ExternalCatalogItem, error) {
	if _, err := strconv.ParseInt(externalID, 10, 64); err != nil {
		return nil, fmt.Errorf("woocommerce: invalid product ID %q", externalID)
	}

	body, status, err := p.doGet(ctx, productsPath+"/"+externalID, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrProviderUnavailable, status)
	}

	var product wooProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: unexpected product payload: %v", integration.ErrProviderUnavailable, err)
	}

	item := product.toCatalogItem()
	return &item, nil
}

// Ping checks that the store answers with the stored credentials
func (p *WooCommerceProvider) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("per_page", "1")

	_, status, err := p.doGet(ctx, productsPath, query)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d", integration.ErrProviderUnavailable, status)
	}
	return nil
}

func (p *WooCommerceProvider) doGet(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}
	req.SetBasicAuth(p.consumerKey, p.consumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", integration.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// WooCommerceFactory builds providers from per-tenant connection
// records. It satisfies the import pipeline's provider factory.
type WooCommerceFactory struct {
	timeout time.Duration
}

// NewWooCommerceFactory creates a factory with the given request timeout
func NewWooCommerceFactory(timeout time.Duration) *WooCommerceFactory {
	return &WooCommerceFactory{timeout: timeout}
}

// New builds a catalog provider for the given connection record
func (f *WooCommerceFactory) New(config *integration.IntegrationConfig) (integration.CatalogProvider, error) {
	if config.Provider != integration.ProviderWooCommerce {
		return nil, fmt.Errorf("woocommerce: unsupported provider %q", config.Provider)
	}
	return NewWooCommerceProvider(config, f.timeout)
}
