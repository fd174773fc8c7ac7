package domain

// MatchStrategy identifies which search strategy produced a candidate.
type MatchStrategy string

const (
	StrategyExact         MatchStrategy = "exact"
	StrategyFuzzyName     MatchStrategy = "fuzzy-name"
	StrategyFuzzyBrand    MatchStrategy = "fuzzy-brand"
	StrategyFuzzyCategory MatchStrategy = "fuzzy-category"
	StrategyFullText      MatchStrategy = "full-text"
	StrategyAlternatives  MatchStrategy = "alternatives"
	StrategyFeatured      MatchStrategy = "featured"
)

// MatchCandidate is a transient pairing of a product with the strategy that
// found it and that strategy's raw score. Candidates only live between the
// cascade and the ranker; they are never returned to callers.
type MatchCandidate struct {
	Product  Product
	Strategy MatchStrategy
	RawScore float64
}

// SearchResult is the ordered outcome of one search call plus a
// human-readable description of the kind of match that produced it.
type SearchResult struct {
	Products    []Product `json:"products"`
	Description string    `json:"description"`
}
