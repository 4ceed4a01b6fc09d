package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/usecase"
)

// CatalogRefresher triggers a wholesale catalog rebuild.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
	motivation      *usecase.MotivationGenerator
	refresher       CatalogRefresher
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService, motivation *usecase.MotivationGenerator, refresher CatalogRefresher) *Handler {
	return &Handler{
		recommendations: recommendations,
		motivation:      motivation,
		refresher:       refresher,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ecomart-backend",
		"version": "1.0.0",
	})
}

type homeRequest struct {
	Profile domain.UserProfile `json:"profile"`
}

type searchRequest struct {
	Profile domain.UserProfile `json:"profile"`
	Query   string             `json:"query"`
}

type cartRequest struct {
	Profile   domain.UserProfile `json:"profile"`
	ProductID string             `json:"productId" binding:"required"`
	TopK      int                `json:"topK"`
}

// HomeRecommendations handles home-page recommendation requests
func (h *Handler) HomeRecommendations(c *gin.Context) {
	var req homeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ids, err := h.recommendations.HomeRecommendations(c.Request.Context(), &req.Profile)
	if err != nil {
		log.Printf("home recommendations failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}

// SearchRecommendations handles free-text search recommendation requests.
// An empty query is not an error; it yields an empty list.
func (h *Handler) SearchRecommendations(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ids, err := h.recommendations.SearchRecommendations(c.Request.Context(), &req.Profile, req.Query)
	if err != nil {
		log.Printf("search recommendations failed for %q: %v", req.Query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search recommendation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}

// CartAlternatives handles cart substitute requests
func (h *Handler) CartAlternatives(c *gin.Context) {
	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	ids, err := h.recommendations.CartAlternatives(c.Request.Context(), &req.Profile, req.ProductID, req.TopK)
	if err != nil {
		log.Printf("cart alternatives failed for %q: %v", req.ProductID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart alternatives failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}

// Motivation returns a personalized sustainability message
func (h *Handler) Motivation(c *gin.Context) {
	var req homeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.motivation.Generate(&req.Profile)})
}

// RefreshCatalog triggers a catalog reload and index rebuild
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		log.Printf("catalog refresh failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
