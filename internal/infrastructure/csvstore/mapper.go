package csvstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// mapRecord converts one CSV row into a Product. Text identity fields are
// required; numeric and boolean fields are coerced to sentinels when
// malformed so a bad price never rejects the whole catalog.
func mapRecord(columns map[string]int, record []string) (domain.Product, error) {
	name := strings.TrimSpace(field(columns, record, "name"))
	brand := strings.TrimSpace(field(columns, record, "brand"))
	category := strings.TrimSpace(field(columns, record, "category"))

	if name == "" || brand == "" || category == "" {
		return domain.Product{}, fmt.Errorf("row missing name/brand/category: %q", record)
	}

	product := domain.Product{
		Name:           name,
		Brand:          brand,
		Category:       category,
		ListPrice:      parsePrice(field(columns, record, colListPrice)),
		DiscountPrice:  parsePrice(field(columns, record, colDiscountPrice)),
		OnSale:         parseBool(field(columns, record, colOnSale)),
		UnitsAvailable: parseCount(field(columns, record, colUnitsAvailable)),
		Shipping:       field(columns, record, colShipping),
		PaymentMethods: field(columns, record, colPaymentMethods),
		Financing:      field(columns, record, colFinancing),
		ReturnPolicy:   field(columns, record, colReturnPolicy),
	}

	// A discount only exists while the product is on sale and actually
	// undercuts the list price.
	if !product.OnSale || product.DiscountPrice <= 0 ||
		(product.PriceKnown() && product.DiscountPrice >= product.ListPrice) {
		product.DiscountPrice = 0
	}

	return product, nil
}

// field returns the named column's value, or "" when the column is absent or
// the row is short.
func field(columns map[string]int, record []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// parsePrice coerces a price cell. Anything unparsable or non-positive
// becomes the unknown sentinel (zero).
func parsePrice(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

// parseCount coerces a unit count cell; malformed or negative counts become
// zero.
func parseCount(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseBool coerces a boolean cell; anything unrecognized is false.
func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return false
	}
	return value
}
