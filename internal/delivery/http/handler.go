package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plantshop/backend/internal/domain"
	"go.uber.org/zap"
)

// StorefrontUsecase is the set of intents the HTTP layer dispatches
type StorefrontUsecase interface {
	Refresh(ctx context.Context, force bool) error
	CatalogView() domain.CatalogView
	SelectCategory(category string) domain.CatalogView
	Categories() domain.CategoryList
	PlantDetail(name string) (domain.PlantCard, error)
	AddToCart(name string) (domain.CartSummary, error)
	RemoveFromCart(name string) domain.CartSummary
	Cart() domain.CartSummary
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	storefront StorefrontUsecase
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil storefront makes every
// storefront endpoint answer 501.
func NewHandler(storefront StorefrontUsecase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		storefront: storefront,
		logger:     logger,
	}
}

type selectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type addToCartRequest struct {
	Name string `json:"name" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "plantshop-backend",
		"version": "1.0.0",
	})
}

// GetCatalog renders the catalog grid. ?category= selects a category first.
func (h *Handler) GetCatalog(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	if category, ok := c.GetQuery("category"); ok {
		c.JSON(http.StatusOK, h.storefront.SelectCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.storefront.CatalogView())
}

// RefreshCatalog re-fetches the catalog; ?force=true bypasses the snapshot cache
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	force, err := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "force must be a boolean")
		return
	}

	if err := h.storefront.Refresh(c.Request.Context(), force); err != nil {
		h.logger.Warn("catalog refresh failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, h.storefront.CatalogView())
		return
	}

	c.JSON(http.StatusOK, h.storefront.CatalogView())
}

// GetCategories lists the filter bar entries and the active one
func (h *Handler) GetCategories(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	c.JSON(http.StatusOK, h.storefront.Categories())
}

// SelectCategory sets the active category and renders the grid
func (h *Handler) SelectCategory(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req selectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidRequest.Error()+": category is required")
		return
	}

	c.JSON(http.StatusOK, h.storefront.SelectCategory(req.Category))
}

// GetPlant renders the detail modal for one plant
func (h *Handler) GetPlant(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	card, err := h.storefront.PlantDetail(c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// GetCart renders the cart panel
func (h *Handler) GetCart(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	c.JSON(http.StatusOK, h.storefront.Cart())
}

// AddToCart adds one unit of a catalog plant
func (h *Handler) AddToCart(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidRequest.Error()+": name is required")
		return
	}

	summary, err := h.storefront.AddToCart(req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RemoveFromCart drops a whole cart line
func (h *Handler) RemoveFromCart(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	c.JSON(http.StatusOK, h.storefront.RemoveFromCart(c.Param("name")))
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.storefront == nil {
		respondError(c, http.StatusNotImplemented, "storefront service not configured")
		return false
	}
	return true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrPlantNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("unhandled storefront error", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
