package integration

import (
	"context"
	"strings"
)

// CatalogImage is a product image in an external catalog
type CatalogImage struct {
	URL      string
	Alt      string
	Position int
}

// CatalogAttribute is a named attribute with one or more option values
type CatalogAttribute struct {
	Name    string
	Options []string
}

// CatalogCategory is a category an external item belongs to
type CatalogCategory struct {
	Name string
	Slug string
}

// CatalogMeta is a free-form key/value entry attached to an item
type CatalogMeta struct {
	Key   string
	Value string
}

// ExternalCatalogItem is a platform-neutral view of one product in an
// external catalog. Adapters translate their wire formats into this.
type ExternalCatalogItem struct {
	ExternalID   string
	Name         string
	SKU          string
	Description  string
	RegularPrice string
	Status       string
	StockStatus  string
	Images       []CatalogImage
	Attributes   []CatalogAttribute
	Categories   []CatalogCategory
	Metadata     []CatalogMeta
}

// Property returns the value of a well-known item property matched by
// its exact external field name. Price field names all resolve to the
// regular price.
func (i ExternalCatalogItem) Property(name string) (string, bool) {
	switch name {
	case "name":
		return i.Name, i.Name != ""
	case "sku":
		return i.SKU, i.SKU != ""
	case "description":
		return i.Description, i.Description != ""
	case "price", "regular_price", "sale_price":
		return i.RegularPrice, i.RegularPrice != ""
	case "status":
		return i.Status, i.Status != ""
	case "stock_status":
		return i.StockStatus, i.StockStatus != ""
	}
	return "", false
}

// Attribute returns the attribute with the given name, matched
// case-insensitively
func (i ExternalCatalogItem) Attribute(name string) (CatalogAttribute, bool) {
	for _, attr := range i.Attributes {
		if strings.EqualFold(attr.Name, name) {
			return attr, true
		}
	}
	return CatalogAttribute{}, false
}

// Meta returns the metadata value for an exact key match
func (i ExternalCatalogItem) Meta(key string) (string, bool) {
	for _, m := range i.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// CatalogProvider fetches items from an external catalog.
// A page shorter than pageSize signals the end of the catalog.
type CatalogProvider interface {
	FetchPage(ctx context.Context, page, pageSize int) ([]ExternalCatalogItem, error)
	FetchItem(ctx context.Context, externalID string) (*ExternalCatalogItem, error)
	Ping(ctx context.Context) error
}
