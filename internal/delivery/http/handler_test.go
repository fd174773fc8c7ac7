package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/backend/config"
	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testRouter() *gin.Engine {
	catalog := usecase.NewCatalog([]domain.Product{
		{Name: "iPhone 13", Brand: "Apple", Category: "Electronics", ListPrice: 999, UnitsAvailable: 25},
		{Name: "iPhone 13 Pro", Brand: "Apple", Category: "Electronics", ListPrice: 1199, DiscountPrice: 899, OnSale: true, UnitsAvailable: 8},
		{Name: "Nike Air Max", Brand: "Nike", Category: "Footwear", ListPrice: 149, DiscountPrice: 119, OnSale: true, UnitsAvailable: 60},
	})
	service := usecase.NewSearchService(catalog, nil, usecase.SearchConfig{})
	handler := NewHandler(service, catalog, 8)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.RateLimit.PerIP = 1000

	return SetupRouter(cfg, handler)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)

	payload := make(map[string]json.RawMessage)
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
	}
	return w, payload
}

func decodeProducts(t *testing.T, raw json.RawMessage) []domain.Product {
	t.Helper()
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("invalid products payload: %v", err)
	}
	return products
}

func TestHealthCheck(t *testing.T) {
	router := testRouter()
	w, payload := doJSON(t, router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status string
	json.Unmarshal(payload["status"], &status)
	if status != "healthy" {
		t.Errorf("status field = %q", status)
	}
	var count int
	json.Unmarshal(payload["products"], &count)
	if count != 3 {
		t.Errorf("products = %d, want 3", count)
	}
}

func TestSearchProductsEndpoint(t *testing.T) {
	router := testRouter()

	t.Run("exact search", func(t *testing.T) {
		w, payload := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"query":"iphone 13"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		products := decodeProducts(t, payload["products"])
		if len(products) != 2 {
			t.Fatalf("got %d products, want 2", len(products))
		}
		if products[0].Name != "iPhone 13" || products[1].Name != "iPhone 13 Pro" {
			t.Errorf("products = %v", products)
		}

		var description string
		json.Unmarshal(payload["description"], &description)
		if !strings.HasPrefix(description, "Exact matches") {
			t.Errorf("description = %q", description)
		}
	})

	t.Run("explicit zero max results", func(t *testing.T) {
		w, payload := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"query":"iphone","maxResults":0}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if products := decodeProducts(t, payload["products"]); len(products) != 0 {
			t.Errorf("got %d products, want 0", len(products))
		}
		// The list must encode as [], never null.
		if strings.Contains(w.Body.String(), `"products":null`) {
			t.Error("products encoded as null")
		}
	})

	t.Run("empty query returns featured", func(t *testing.T) {
		w, payload := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"query":""}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var description string
		json.Unmarshal(payload["description"], &description)
		if description != "Featured products" {
			t.Errorf("description = %q", description)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/products/search", `{"query":`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestFeaturedProductsEndpoint(t *testing.T) {
	router := testRouter()
	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/featured?limit=4", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	products := decodeProducts(t, payload["products"])
	if len(products) == 0 {
		t.Error("featured list is empty")
	}
}

func TestProductsOnSaleEndpoint(t *testing.T) {
	router := testRouter()
	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/on-sale", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	products := decodeProducts(t, payload["products"])
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	for _, p := range products {
		if !p.OnSale {
			t.Errorf("product %q is not on sale", p.Name)
		}
	}
}

func TestProductsByCategoryEndpoint(t *testing.T) {
	router := testRouter()
	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/category/electronis", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	products := decodeProducts(t, payload["products"])
	if len(products) != 2 {
		t.Fatalf("got %d products, want the 2 electronics", len(products))
	}
}

func TestProductsByBrandEndpoint(t *testing.T) {
	router := testRouter()
	w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/brand/aple?limit=1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	products := decodeProducts(t, payload["products"])
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].Brand != "Apple" {
		t.Errorf("brand = %q, want Apple", products[0].Brand)
	}
}

func TestProductsByPriceRangeEndpoint(t *testing.T) {
	router := testRouter()

	t.Run("inclusive bounds", func(t *testing.T) {
		w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/price-range?min=100&max=1000", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		products := decodeProducts(t, payload["products"])
		if len(products) != 2 {
			t.Fatalf("got %d products, want 2", len(products))
		}
	})

	t.Run("open bounds return everything priced", func(t *testing.T) {
		w, payload := doJSON(t, router, http.MethodGet, "/api/v1/products/price-range", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if products := decodeProducts(t, payload["products"]); len(products) != 3 {
			t.Errorf("got %d products, want 3", len(products))
		}
	})

	t.Run("unparsable bound", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodGet, "/api/v1/products/price-range?min=abc", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
