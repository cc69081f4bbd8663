package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/i18n"
	"github.com/guttosm/engraving-service/internal/service"
)

// CatalogHandler provides HTTP handlers for the product catalog routes.
type CatalogHandler struct {
	catalog service.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List customizable products
// @Description  Returns all products available for customization, including their variations, engraving zones and base prices.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Product catalog"
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)
	builder.SuccessOK(h.catalog.Products())
}

// GetProduct handles GET /api/products/:id requests.
//
// @Summary      Get a product
// @Description  Returns a single customizable product with its variations and engraving zones.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse "Product details"
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		builder.Error(http.StatusNotFound, i18n.ErrKeyUnknownProduct, service.ErrUnknownProduct)
		return
	}
	builder.SuccessOK(product)
}
