package domain

import (
	"fmt"
	"strings"
)

// Product represents a single catalog entry. Products are immutable after
// load; a catalog reload builds a fresh set rather than patching rows in
// place.
type Product struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`

	// ListPrice is the undiscounted price. Zero means the source row had an
	// unparsable price; such rows are excluded from price-range queries.
	ListPrice      float64 `json:"listPrice"`
	DiscountPrice  float64 `json:"discountPrice,omitempty"`
	OnSale         bool    `json:"onSale"`
	UnitsAvailable int     `json:"unitsAvailable"`

	// Descriptive text passed through from the source unmodified.
	Shipping       string `json:"shipping,omitempty"`
	PaymentMethods string `json:"paymentMethods,omitempty"`
	Financing      string `json:"financing,omitempty"`
	ReturnPolicy   string `json:"returnPolicy,omitempty"`

	// SearchText is the lowercase "name category brand" blob built once when
	// the catalog is constructed. Never serialized.
	SearchText string `json:"-"`
}

// PriceKnown reports whether the source row carried a usable list price.
func (p Product) PriceKnown() bool {
	return p.ListPrice > 0
}

// EffectivePrice returns the discount price when the product is on sale with
// a valid discount, otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.OnSale && p.DiscountPrice > 0 && p.DiscountPrice < p.ListPrice {
		return p.DiscountPrice
	}
	return p.ListPrice
}

// Summary builds a short display line like "Apple - Electronics - 25% off!".
// The discount suffix is omitted when the list price is unknown.
func (p Product) Summary() string {
	summary := fmt.Sprintf("%s - %s", p.Brand, p.Category)
	if p.OnSale && p.PriceKnown() {
		effective := p.EffectivePrice()
		if effective < p.ListPrice {
			pct := int((p.ListPrice - effective) / p.ListPrice * 100)
			summary += fmt.Sprintf(" - %d%% off!", pct)
		}
	}
	return summary
}

// BuildSearchText derives the lowercase full-text blob for a product.
func BuildSearchText(p Product) string {
	return strings.ToLower(p.Name + " " + p.Category + " " + p.Brand)
}
