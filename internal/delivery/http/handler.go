package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/usecase"
)

// defaultLimit caps list endpoints when the caller doesn't specify one.
const defaultLimit = 10

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService     *usecase.SearchService
	catalog           *usecase.Catalog
	defaultMaxResults int
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, catalog *usecase.Catalog, defaultMaxResults int) *Handler {
	if defaultMaxResults <= 0 {
		defaultMaxResults = 8
	}
	return &Handler{
		searchService:     searchService,
		catalog:           catalog,
		defaultMaxResults: defaultMaxResults,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "shoplens-backend",
		"version":  "1.0.0",
		"products": h.catalog.Len(),
	})
}

// searchRequest is the body of POST /products/search. MaxResults is a
// pointer so an omitted field falls back to the configured default while an
// explicit zero still means "no products".
type searchRequest struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"maxResults,omitempty"`
}

// SearchProducts handles product search requests
func (h *Handler) SearchProducts(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  domain.ErrInvalidRequest.Error(),
			"detail": "invalid request body",
		})
		return
	}

	maxResults := h.defaultMaxResults
	if req.MaxResults != nil {
		maxResults = *req.MaxResults
	}

	result := h.searchService.Search(c.Request.Context(), req.Query, maxResults)
	c.JSON(http.StatusOK, result)
}

// FeaturedProducts returns the curated featured mix
func (h *Handler) FeaturedProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.Featured(h.limit(c)),
	})
}

// ProductsOnSale returns products currently discounted
func (h *Handler) ProductsOnSale(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.OnSale(h.limit(c)),
	})
}

// ProductsByCategory returns products in the category closest to :name
func (h *Handler) ProductsByCategory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.ByCategory(c.Param("name"), h.limit(c)),
	})
}

// ProductsByBrand returns products of the brand closest to :name
func (h *Handler) ProductsByBrand(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.ByBrand(c.Param("name"), h.limit(c)),
	})
}

// ProductsByPriceRange returns products inside the inclusive min/max bounds
// given as query parameters; either bound may be omitted.
func (h *Handler) ProductsByPriceRange(c *gin.Context) {
	minPrice, ok := optionalFloat(c, "min")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  domain.ErrInvalidRequest.Error(),
			"detail": "invalid min price",
		})
		return
	}
	maxPrice, ok := optionalFloat(c, "max")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  domain.ErrInvalidRequest.Error(),
			"detail": "invalid max price",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.ByPriceRange(minPrice, maxPrice, h.limit(c)),
	})
}

// limit reads the optional ?limit= parameter, falling back to defaultLimit.
func (h *Handler) limit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return defaultLimit
	}
	return limit
}

// optionalFloat parses a query parameter into a *float64, nil when absent.
func optionalFloat(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}
