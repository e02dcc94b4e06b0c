package ecommerce

import (
	"encoding/json"
	"strconv"

	"github.com/rentops/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// WooCommerce REST v3 wire types
// ---------------------------------------------------------------------------

// wooProduct is one product as returned by /wp-json/wc/v3/products.
// RegularPrice is a decimal string on the wire; empty means unpriced.
type wooProduct struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	SKU          string         `json:"sku"`
	Description  string         `json:"description"`
	RegularPrice string         `json:"regular_price"`
	Status       string         `json:"status"`
	StockStatus  string         `json:"stock_status"`
	Images       []wooImage     `json:"images,omitempty"`
	Attributes   []wooAttribute `json:"attributes,omitempty"`
	Categories   []wooCategory  `json:"categories,omitempty"`
	MetaData     []wooMeta      `json:"meta_data,omitempty"`
}

type wooImage struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type wooAttribute struct {
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

type wooCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// wooMeta is one meta_data entry. The value is free-typed on the wire
// (plugins store strings, numbers, booleans and nested structures), so
// it is kept raw and coerced when read.
type wooMeta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// stringValue coerces the raw meta value into a string. Scalars map
// to their literal text; anything structured keeps its JSON form.
func (m wooMeta) stringValue() string {
	if len(m.Value) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(m.Value, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(m.Value, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(m.Value, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(m.Value)
}

// toCatalogItem translates a wire product into the platform-neutral
// catalog item the import pipeline consumes
func (p wooProduct) toCatalogItem() integration.ExternalCatalogItem {
	item := integration.ExternalCatalogItem{
		ExternalID:   strconv.FormatInt(p.ID, 10),
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		RegularPrice: p.RegularPrice,
		Status:       p.Status,
		StockStatus:  p.StockStatus,
	}

	for _, img := range p.Images {
		item.Images = append(item.Images, integration.CatalogImage{
			URL:      img.Src,
			Alt:      img.Alt,
			Position: img.Position,
		})
	}
	for _, attr := range p.Attributes {
		item.Attributes = append(item.Attributes, integration.CatalogAttribute{
			Name:    attr.Name,
			Options: attr.Options,
		})
	}
	for _, cat := range p.Categories {
		item.Categories = append(item.Categories, integration.CatalogCategory{
			Name: cat.Name,
			Slug: cat.Slug,
		})
	}
	for _, meta := range p.MetaData {
		item.Metadata = append(item.Metadata, integration.CatalogMeta{
			Key:   meta.Key,
			Value: meta.stringValue(),
		})
	}

	return item
}
