package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomart/backend/config"
	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/infrastructure/cache"
	"github.com/ecomart/backend/internal/infrastructure/catalog"
	"github.com/ecomart/backend/internal/usecase"
)

// staticSource serves a fixed product list without touching the filesystem.
type staticSource struct {
	products []domain.Product
}

func (s *staticSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := catalog.NewStore(&staticSource{products: []domain.Product{
		{ID: "P1", Title: "Eco Bamboo Soap", Brand: "GreenCo", Category: "Soap", Price: 10, Rating: 4.5, EcoGrade: "A", WaterGrade: "A"},
		{ID: "P2", Title: "Plain Soap Bar", Brand: "Basic", Category: "Soap", Price: 9, Rating: 3.0, EcoGrade: "C", WaterGrade: "C"},
		{ID: "P3", Title: "Steel Water Bottle", Brand: "Hydra", Category: "Bottles", Price: 25, Rating: 4.8, EcoGrade: "A+", WaterGrade: "B"},
	}})
	require.NoError(t, store.Refresh(context.Background()))

	service := usecase.NewRecommendationService(store, cache.NewMemoryCache(), usecase.RankingConfig{})
	motivation := usecase.NewMotivationGenerator(1)
	handler := NewHandler(service, motivation, store)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 0},
	}
	return SetupRouter(cfg, handler)
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeIDs(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp struct {
		ProductIDs []string `json:"productIds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ProductIDs
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "ecomart-backend", resp["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHomeRecommendationsEndpoint(t *testing.T) {
	router := testRouter(t)

	t.Run("new user gets the sustainability ranking", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/home", gin.H{"profile": gin.H{}})
		require.Equal(t, http.StatusOK, w.Code)

		ids := decodeIDs(t, w)
		require.Len(t, ids, 3)
		assert.Equal(t, "P3", ids[0], "highest sustainability first")
	})

	t.Run("purchased products are excluded", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/home", gin.H{
			"profile": gin.H{"purchaseHistory": []string{"P3"}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, decodeIDs(t, w), "P3")
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/home", bytes.NewReader([]byte(`{bad`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchRecommendationsEndpoint(t *testing.T) {
	router := testRouter(t)

	t.Run("matches by title and category", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/search", gin.H{
			"profile": gin.H{},
			"query":   "soap",
		})
		require.Equal(t, http.StatusOK, w.Code)

		ids := decodeIDs(t, w)
		require.NotEmpty(t, ids)
		assert.Contains(t, ids, "P1")
		assert.Contains(t, ids, "P2")
	})

	t.Run("blank query yields an empty list", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/search", gin.H{
			"profile": gin.H{},
			"query":   "   ",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeIDs(t, w))
	})
}

func TestCartAlternativesEndpoint(t *testing.T) {
	router := testRouter(t)

	t.Run("suggests greener substitutes", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/cart", gin.H{
			"profile":   gin.H{},
			"productId": "P2",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"P1"}, decodeIDs(t, w))
	})

	t.Run("unknown product yields an empty list", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/cart", gin.H{
			"profile":   gin.H{},
			"productId": "NOPE",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeIDs(t, w))
	})

	t.Run("missing productId is rejected", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/recommendations/cart", gin.H{"profile": gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMotivationEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/motivation", gin.H{
		"profile": gin.H{"ecoScore": 80, "waterScore": 70},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])
}

func TestRefreshCatalogEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/catalog/refresh", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "refreshed", resp["status"])
}
