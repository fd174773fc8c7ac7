// Package csvstore loads the product catalog from a CSV file. It is the only
// I/O the search core depends on, and it runs once at startup.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shoplens/backend/internal/domain"
)

// Required columns. Rows missing one of these headers make the whole source
// unusable; malformed values inside a row are coerced instead.
var requiredColumns = []string{"name", "brand", "category"}

// Optional columns with coercible values.
const (
	colListPrice      = "list_price"
	colDiscountPrice  = "discount_price"
	colOnSale         = "on_sale"
	colUnitsAvailable = "units_available"
	colShipping       = "shipping"
	colPaymentMethods = "payment_methods"
	colFinancing      = "financing"
	colReturnPolicy   = "return_policy"
)

// Store reads catalog products from a CSV file.
type Store struct {
	path  string
	debug bool
}

var _ domain.ProductSource = (*Store)(nil)

// New creates a CSV-backed product source for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// SetDebug enables per-row coercion logging.
func (s *Store) SetDebug(debug bool) {
	s.debug = debug
}

// Load reads and parses every row of the CSV file. Rows with a missing name,
// brand, or category are skipped; unparsable prices and counts are coerced to
// the unknown sentinel. Load fails with ErrDataSource only when the file is
// unreadable, a required column is absent, or no row survives parsing.
func (s *Store) Load(ctx context.Context) ([]domain.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataSource, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrDataSource, err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	skipped := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally broken row; coercion can't help here.
			skipped++
			continue
		}

		product, err := mapRecord(columns, record)
		if err != nil {
			if s.debug {
				log.Printf("[CSVSTORE] skipping row: %v", err)
			}
			skipped++
			continue
		}
		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in %s (%d skipped)", domain.ErrDataSource, s.path, skipped)
	}

	if s.debug {
		log.Printf("[CSVSTORE] loaded %d product(s) from %s, skipped %d", len(products), s.path, skipped)
	}
	return products, nil
}

// indexColumns maps header names to their positions and verifies the
// required columns exist.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", domain.ErrDataSource, required)
		}
	}
	return columns, nil
}
