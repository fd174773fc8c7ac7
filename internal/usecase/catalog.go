package usecase

import (
	"sort"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// lookupThreshold is the minimum similarity for the top-1 fuzzy match used
// by the ByCategory/ByBrand lookups.
const lookupThreshold = 60

// premiumBrands backs the featured-products quota. Curated, not learned.
var premiumBrands = []string{"Apple", "Samsung", "Sony", "Nike", "Adidas", "Gucci", "Prada"}

// Catalog owns the full ordered product list plus the derived category and
// brand indexes. It is built once and never mutated afterwards, so concurrent
// readers need no locking; replacing the catalog means building a new one and
// swapping the handle atomically.
type Catalog struct {
	products   []domain.Product
	categories []string
	brands     []string
}

// NewCatalog builds a catalog from loaded products. Search text and the
// distinct category/brand indexes are derived here, exactly once. The
// distinct lists preserve first-occurrence order so every downstream
// operation stays deterministic.
func NewCatalog(products []domain.Product) *Catalog {
	owned := make([]domain.Product, len(products))
	copy(owned, products)

	var categories, brands []string
	seenCategory := make(map[string]bool)
	seenBrand := make(map[string]bool)

	for i := range owned {
		owned[i].SearchText = domain.BuildSearchText(owned[i])

		if !seenCategory[owned[i].Category] {
			seenCategory[owned[i].Category] = true
			categories = append(categories, owned[i].Category)
		}
		if !seenBrand[owned[i].Brand] {
			seenBrand[owned[i].Brand] = true
			brands = append(brands, owned[i].Brand)
		}
	}

	return &Catalog{
		products:   owned,
		categories: categories,
		brands:     brands,
	}
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Products returns the full ordered product list. Callers must treat the
// returned slice as read-only.
func (c *Catalog) Products() []domain.Product {
	if c == nil {
		return nil
	}
	return c.products
}

// Categories returns the distinct category names in first-occurrence order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	return c.categories
}

// Brands returns the distinct brand names in first-occurrence order.
func (c *Catalog) Brands() []string {
	if c == nil {
		return nil
	}
	return c.brands
}

// ByCategory returns products in the category best matching name. The lookup
// is fuzzy (top-1 against the category index) but the filter is exact.
// Fail-soft: no catalog or no close category yields an empty result.
func (c *Catalog) ByCategory(name string, maxResults int) []domain.Product {
	if c == nil {
		return nil
	}
	matches := topMatches(name, c.categories, 1)
	if len(matches) == 0 || matches[0].score < lookupThreshold {
		return nil
	}
	best := matches[0].value

	var results []domain.Product
	for _, p := range c.products {
		if len(results) >= maxResults {
			break
		}
		if p.Category == best {
			results = append(results, p)
		}
	}
	return results
}

// ByBrand returns products of the brand best matching name, same pattern as
// ByCategory.
func (c *Catalog) ByBrand(name string, maxResults int) []domain.Product {
	if c == nil {
		return nil
	}
	matches := topMatches(name, c.brands, 1)
	if len(matches) == 0 || matches[0].score < lookupThreshold {
		return nil
	}
	best := matches[0].value

	var results []domain.Product
	for _, p := range c.products {
		if len(results) >= maxResults {
			break
		}
		if p.Brand == best {
			results = append(results, p)
		}
	}
	return results
}

// OnSale returns products currently on sale, in catalog order.
func (c *Catalog) OnSale(maxResults int) []domain.Product {
	if c == nil {
		return nil
	}
	var results []domain.Product
	for _, p := range c.products {
		if len(results) >= maxResults {
			break
		}
		if p.OnSale {
			results = append(results, p)
		}
	}
	return results
}

// ByPriceRange returns products whose list price falls inside the inclusive
// bounds. Either bound may be nil for an open side. Rows with an unknown
// price never match.
func (c *Catalog) ByPriceRange(minPrice, maxPrice *float64, maxResults int) []domain.Product {
	if c == nil {
		return nil
	}
	var results []domain.Product
	for _, p := range c.products {
		if len(results) >= maxResults {
			break
		}
		if !p.PriceKnown() {
			continue
		}
		if minPrice != nil && p.ListPrice < *minPrice {
			continue
		}
		if maxPrice != nil && p.ListPrice > *maxPrice {
			continue
		}
		results = append(results, p)
	}
	return results
}

// Featured returns a curated fallback mix: premium-brand products fill half
// the quota, on-sale products fill the other half, premium first, deduped by
// name.
func (c *Catalog) Featured(maxResults int) []domain.Product {
	if c == nil || maxResults <= 0 {
		return nil
	}

	premium := make(map[string]bool, len(premiumBrands))
	for _, b := range premiumBrands {
		premium[b] = true
	}

	half := maxResults / 2
	var combined []domain.Product
	count := 0
	for _, p := range c.products {
		if count >= half {
			break
		}
		if premium[p.Brand] {
			combined = append(combined, p)
			count++
		}
	}
	count = 0
	for _, p := range c.products {
		if count >= half {
			break
		}
		if p.OnSale {
			combined = append(combined, p)
			count++
		}
	}

	featured := dedupeByName(combined)
	if len(featured) > maxResults {
		featured = featured[:maxResults]
	}
	return featured
}

// scoredChoice pairs a choice string with its similarity to a query.
type scoredChoice struct {
	value string
	score int
}

// topMatches scores query against every choice case-insensitively and
// returns the best limit choices ordered by descending score. Ties keep the
// original choice order.
func topMatches(query string, choices []string, limit int) []scoredChoice {
	if limit <= 0 || len(choices) == 0 {
		return nil
	}
	queryLower := strings.ToLower(query)

	scored := make([]scoredChoice, 0, len(choices))
	for _, choice := range choices {
		scored = append(scored, scoredChoice{
			value: choice,
			score: Score(queryLower, strings.ToLower(choice)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
