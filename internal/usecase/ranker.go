package usecase

import (
	"sort"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// Relevance weights. These mirror long-standing storefront ranking behavior;
// treat them as tunable business rules, not derived values.
const (
	nameMatchWeight     = 10.0 // query is a substring of the product name
	brandMatchWeight    = 5.0  // query is a substring of the brand
	categoryMatchWeight = 3.0  // query is a substring of the category
	similarityWeight    = 2.0  // scaled partial-ratio of query vs name
	onSaleBoost         = 1.0
	availabilityBoost   = 0.5
	availabilityFloor   = 10 // units required for the availability boost
)

// rank deduplicates candidates by product name, orders the survivors by
// relevance to the query, and truncates to maxResults. The relevance score is
// internal; it never reaches callers.
//
// Dedup is stable (first occurrence in candidate order wins) and so is the
// sort, so equal-relevance products keep their strategy-produced order.
func rank(candidates []domain.MatchCandidate, query string, maxResults int) []domain.Product {
	seen := make(map[string]bool, len(candidates))

	type scoredProduct struct {
		product   domain.Product
		relevance float64
	}
	unique := make([]scoredProduct, 0, len(candidates))

	for _, cand := range candidates {
		if seen[cand.Product.Name] {
			continue
		}
		seen[cand.Product.Name] = true
		unique = append(unique, scoredProduct{
			product:   cand.Product,
			relevance: relevanceScore(cand.Product, query),
		})
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].relevance > unique[j].relevance
	})

	if maxResults < 0 {
		maxResults = 0
	}
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}

	products := make([]domain.Product, 0, len(unique))
	for _, sp := range unique {
		products = append(products, sp.product)
	}
	return products
}

// relevanceScore computes how relevant a product is to a lowercase query.
func relevanceScore(p domain.Product, query string) float64 {
	score := 0.0

	nameLower := strings.ToLower(p.Name)
	if strings.Contains(nameLower, query) {
		score += nameMatchWeight
	}
	if strings.Contains(strings.ToLower(p.Brand), query) {
		score += brandMatchWeight
	}
	if strings.Contains(strings.ToLower(p.Category), query) {
		score += categoryMatchWeight
	}

	score += similarityWeight * float64(Score(query, nameLower)) / 100

	if p.OnSale {
		score += onSaleBoost
	}
	if p.UnitsAvailable > availabilityFloor {
		score += availabilityBoost
	}

	return score
}

// dedupeByName removes products sharing a name, keeping the first occurrence.
func dedupeByName(products []domain.Product) []domain.Product {
	seen := make(map[string]bool, len(products))
	unique := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		unique = append(unique, p)
	}
	return unique
}
