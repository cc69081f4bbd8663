package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/i18n"
	"github.com/guttosm/engraving-service/internal/middleware"
	"github.com/guttosm/engraving-service/internal/service"
)

// TierCacheInvalidator clears the cached tier table after updates.
type TierCacheInvalidator interface {
	Invalidate()
}

// PriceTiersHandler provides HTTP handlers for price tier configuration routes.
type PriceTiersHandler struct {
	tiersService service.PriceTiersService
	tierCache    TierCacheInvalidator
}

// NewPriceTiersHandler creates a new PriceTiersHandler instance.
func NewPriceTiersHandler(tiersService service.PriceTiersService, tierCache TierCacheInvalidator) *PriceTiersHandler {
	return &PriceTiersHandler{
		tiersService: tiersService,
		tierCache:    tierCache,
	}
}

// GetActiveTiers handles GET /api/price-tiers requests.
//
// @Summary      Get active price tiers
// @Description  Returns the currently active text pricing tier table. Falls back to the built-in defaults when no configuration is stored.
// @Tags         Price Tiers
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer admin token"
// @Success      200 {object} dto.SuccessResponse "Active price tiers"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-tiers [get]
func (h *PriceTiersHandler) GetActiveTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	config, err := h.tiersService.GetActive(c.Request.Context())
	if err != nil && !errors.Is(err, service.ErrRepositoryNotConfigured) {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	if config == nil {
		// No stored configuration; the defaults are in effect.
		builder.SuccessOK(map[string]interface{}{
			"tiers":   model.DefaultPriceTiers,
			"default": true,
		})
		return
	}

	builder.SuccessOK(map[string]interface{}{
		"tiers":      config.Tiers,
		"version":    config.Version,
		"created_at": config.CreatedAt,
		"updated_at": config.UpdatedAt,
	})
}

// UpdateTiers handles PUT /api/price-tiers requests.
//
// @Summary      Update price tiers
// @Description  Replaces the active text pricing tier table. The table must be contiguous from one character with positive prices.
// @Tags         Price Tiers
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer admin token"
// @Param        request body dto.UpdatePriceTiersRequest true "New tier table"
// @Success      200 {object} dto.SuccessResponse "Updated price tiers"
// @Failure      400 {object} dto.ErrorResponse "Invalid tier table"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-tiers [put]
func (h *PriceTiersHandler) UpdateTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdatePriceTiersRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	config, err := h.tiersService.Create(c.Request.Context(), req.Tiers, req.CreatedBy)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTiers) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidTiers, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	if h.tierCache != nil {
		h.tierCache.Invalidate()
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "update_price_tiers", "Price tier configuration updated", map[string]interface{}{
				"tiers":   req.Tiers,
				"version": config.Version,
			})
		}
	}

	builder.SuccessOK(map[string]interface{}{
		"tiers":      config.Tiers,
		"version":    config.Version,
		"created_at": config.CreatedAt,
		"updated_at": config.UpdatedAt,
	})
}

// ListTiers handles GET /api/price-tiers/history requests.
//
// @Summary      List price tier history
// @Description  Returns all stored price tier configurations, newest first.
// @Tags         Price Tiers
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer admin token"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Price tier history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/price-tiers/history [get]
func (h *PriceTiersHandler) ListTiers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	configs, err := h.tiersService.List(c.Request.Context(), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(configs)
}
