package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shoplens/backend/internal/domain"
)

// Strategy gates. Like the relevance weights in ranker.go these are
// load-bearing business rules; keep them in sync with the documented
// storefront behavior.
const (
	fuzzyNameThreshold     = 60  // product-name candidates must score above this
	fuzzyFilterThreshold   = 70  // brand/category candidates must score above this
	brandCandidateLimit    = 3   // brands considered by the fuzzy-brand strategy
	categoryCandidateLimit = 2   // categories considered by the fuzzy-category strategy
	fullTextScoreMin       = 0.5 // minimum full-text score to count as a hit
	alternativeMinWordLen  = 3   // shortest query word the alternative strategy considers
)

// wordPattern extracts word runs for the alternative-term strategy.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// SearchService runs the multi-strategy search cascade over an immutable
// catalog. Strategies execute in strict order and the first one producing any
// candidate wins; exact substring matches additionally bypass relevance
// ranking and come back in catalog order.
type SearchService struct {
	catalog            *Catalog
	cache              domain.SearchCache
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewSearchService creates a search service for the given catalog. The cache
// may be nil, in which case every call recomputes; results are deterministic
// either way.
func NewSearchService(catalog *Catalog, cache domain.SearchCache, config SearchConfig) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &SearchService{
		catalog:            catalog,
		cache:              cache,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search normalizes the query, runs the cascade, and returns a ranked,
// deduplicated product list with a description of the match kind. It never
// fails: an empty query yields featured products and a query matching
// nothing yields the featured fallback.
func (s *SearchService) Search(ctx context.Context, query string, maxResults int) *domain.SearchResult {
	if maxResults < 0 {
		maxResults = 0
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return &domain.SearchResult{
			Products:    nonNil(s.catalog.Featured(maxResults)),
			Description: "Featured products",
		}
	}

	cacheKey := searchCacheKey(normalized, maxResults)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			return cached
		}
	}

	result := s.runCascade(normalized, maxResults)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[SEARCH] cache set failed for %q: %v", cacheKey, err)
		}
	}

	return result
}

// runCascade walks the ordered strategy list with an already-normalized
// query. Candidates from the winning strategy go through the ranker before
// final truncation.
func (s *SearchService) runCascade(query string, maxResults int) *domain.SearchResult {
	// Exact substring hits short-circuit everything else and skip relevance
	// ranking: they come back in catalog order.
	if exact := s.exactSearch(query, maxResults); len(exact) > 0 {
		if s.enableDebugLogging {
			log.Printf("[SEARCH] %q: exact strategy, %d hit(s)", query, len(exact))
		}
		products := dedupeByName(exact)
		if len(products) > maxResults {
			products = products[:maxResults]
		}
		return &domain.SearchResult{
			Products:    nonNil(products),
			Description: fmt.Sprintf("Exact matches for %q", query),
		}
	}

	strategies := []struct {
		name        domain.MatchStrategy
		run         func(query string, maxResults int) ([]domain.MatchCandidate, bool)
		description string
	}{
		{domain.StrategyFuzzyName, s.fuzzyNameSearch, fmt.Sprintf("Products similar to %q", query)},
		{domain.StrategyFuzzyBrand, s.fuzzyBrandSearch, fmt.Sprintf("Products from brands similar to %q", query)},
		{domain.StrategyFuzzyCategory, s.fuzzyCategorySearch, fmt.Sprintf("Products in categories similar to %q", query)},
		{domain.StrategyFullText, s.fullTextSearch, fmt.Sprintf("Search results for %q", query)},
		{domain.StrategyAlternatives, s.alternativeTermSearch, fmt.Sprintf("Suggested alternatives for %q", query)},
	}

	for _, strategy := range strategies {
		candidates, matched := strategy.run(query, maxResults)
		if !matched {
			continue
		}
		if s.enableDebugLogging {
			log.Printf("[SEARCH] %q: %s strategy, %d candidate(s)", query, strategy.name, len(candidates))
		}
		return &domain.SearchResult{
			Products:    nonNil(rank(candidates, query, maxResults)),
			Description: strategy.description,
		}
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q: no strategy matched, falling back to featured", query)
	}
	return &domain.SearchResult{
		Products:    nonNil(s.catalog.Featured(maxResults)),
		Description: fmt.Sprintf("No results found for %q. Popular products:", query),
	}
}

// exactSearch returns up to limit products whose name, brand, or category
// contains the query as a substring, in catalog order.
func (s *SearchService) exactSearch(query string, limit int) []domain.Product {
	if limit <= 0 {
		return nil
	}
	var hits []domain.Product
	for _, p := range s.catalog.Products() {
		if len(hits) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Brand), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			hits = append(hits, p)
		}
	}
	return hits
}

// fuzzyNameSearch scores the query against every product name, keeps names
// scoring above fuzzyNameThreshold, and maps them back to all products
// bearing those names. Only the top maxResults names are considered.
func (s *SearchService) fuzzyNameSearch(query string, maxResults int) ([]domain.MatchCandidate, bool) {
	products := s.catalog.Products()
	if len(products) == 0 {
		return nil, false
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = strings.ToLower(p.Name)
	}

	matchedNames := make(map[string]int)
	for _, m := range topMatches(query, names, maxResults) {
		if m.score > fuzzyNameThreshold {
			matchedNames[m.value] = m.score
		}
	}
	if len(matchedNames) == 0 {
		return nil, false
	}

	var candidates []domain.MatchCandidate
	for i, p := range products {
		if score, ok := matchedNames[names[i]]; ok {
			candidates = append(candidates, domain.MatchCandidate{
				Product:  p,
				Strategy: domain.StrategyFuzzyName,
				RawScore: float64(score),
			})
		}
	}
	return candidates, len(candidates) > 0
}

// fuzzyBrandSearch considers the top brandCandidateLimit brands by
// similarity, retains those above fuzzyFilterThreshold, and returns the
// products of the matching brands in catalog order.
func (s *SearchService) fuzzyBrandSearch(query string, maxResults int) ([]domain.MatchCandidate, bool) {
	matchedBrands := make(map[string]int)
	for _, m := range topMatches(query, s.catalog.Brands(), brandCandidateLimit) {
		if m.score > fuzzyFilterThreshold {
			matchedBrands[m.value] = m.score
		}
	}
	if len(matchedBrands) == 0 {
		return nil, false
	}

	var candidates []domain.MatchCandidate
	for _, p := range s.catalog.Products() {
		if len(candidates) >= maxResults {
			break
		}
		if score, ok := matchedBrands[p.Brand]; ok {
			candidates = append(candidates, domain.MatchCandidate{
				Product:  p,
				Strategy: domain.StrategyFuzzyBrand,
				RawScore: float64(score),
			})
		}
	}
	return candidates, len(candidates) > 0
}

// fuzzyCategorySearch is the category analogue of fuzzyBrandSearch with a
// tighter candidate limit.
func (s *SearchService) fuzzyCategorySearch(query string, maxResults int) ([]domain.MatchCandidate, bool) {
	matchedCategories := make(map[string]int)
	for _, m := range topMatches(query, s.catalog.Categories(), categoryCandidateLimit) {
		if m.score > fuzzyFilterThreshold {
			matchedCategories[m.value] = m.score
		}
	}
	if len(matchedCategories) == 0 {
		return nil, false
	}

	var candidates []domain.MatchCandidate
	for _, p := range s.catalog.Products() {
		if len(candidates) >= maxResults {
			break
		}
		if score, ok := matchedCategories[p.Category]; ok {
			candidates = append(candidates, domain.MatchCandidate{
				Product:  p,
				Strategy: domain.StrategyFuzzyCategory,
				RawScore: float64(score),
			})
		}
	}
	return candidates, len(candidates) > 0
}

// fullTextSearch scores every product against the individual query words:
// a word found verbatim in the product's search text contributes its rune
// length, and every word contributes its partial-ratio score scaled to
// [0, 1]. Products scoring above fullTextScoreMin survive, best first.
func (s *SearchService) fullTextSearch(query string, maxResults int) ([]domain.MatchCandidate, bool) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil, false
	}

	products := s.catalog.Products()
	type scoredIndex struct {
		idx   int
		score float64
	}
	scores := make([]scoredIndex, 0, len(products))

	for i, p := range products {
		total := 0.0
		for _, word := range words {
			if strings.Contains(p.SearchText, word) {
				total += float64(utf8.RuneCountInString(word))
			}
			total += float64(Score(word, p.SearchText)) / 100
		}
		scores = append(scores, scoredIndex{idx: i, score: total})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var candidates []domain.MatchCandidate
	for _, sc := range scores {
		if len(candidates) >= maxResults {
			break
		}
		if sc.score <= fullTextScoreMin {
			break
		}
		candidates = append(candidates, domain.MatchCandidate{
			Product:  products[sc.idx],
			Strategy: domain.StrategyFullText,
			RawScore: sc.score,
		})
	}
	return candidates, len(candidates) > 0
}

// alternativeTermSearch reruns the exact strategy independently for each
// query word of useful length and concatenates the hits. Duplicates across
// words are expected; the ranker's dedup resolves them.
func (s *SearchService) alternativeTermSearch(query string, maxResults int) ([]domain.MatchCandidate, bool) {
	var candidates []domain.MatchCandidate
	for _, word := range wordPattern.FindAllString(query, -1) {
		if utf8.RuneCountInString(word) < alternativeMinWordLen {
			continue
		}
		for _, p := range s.exactSearch(word, maxResults/2) {
			candidates = append(candidates, domain.MatchCandidate{
				Product:  p,
				Strategy: domain.StrategyAlternatives,
			})
		}
	}
	return candidates, len(candidates) > 0
}

// searchCacheKey builds the cache key for a normalized query and limit.
func searchCacheKey(normalizedQuery string, maxResults int) string {
	return fmt.Sprintf("search:%s:%d", normalizedQuery, maxResults)
}

// nonNil turns a nil product slice into an empty one so JSON encodes [].
func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
