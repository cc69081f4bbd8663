package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/middleware"
)

// EditorRoutes handles registration of the design editor route groups.
type EditorRoutes struct {
	editorHandler     *EditorHandler
	catalogHandler    *CatalogHandler
	tiersHandler      *PriceTiersHandler
	generativeHandler *GenerativeHandler
}

// NewEditorRoutes creates an EditorRoutes instance from the router config.
func NewEditorRoutes(cfg *RouterConfig) *EditorRoutes {
	r := &EditorRoutes{
		editorHandler:  NewEditorHandler(cfg.Editor, cfg.Checkout),
		catalogHandler: NewCatalogHandler(cfg.Catalog),
	}
	if cfg.TiersService != nil {
		r.tiersHandler = NewPriceTiersHandler(cfg.TiersService, cfg.TierCache)
	}
	if cfg.GenerativeClient != nil {
		r.generativeHandler = NewGenerativeHandler(cfg.GenerativeClient)
	}
	return r
}

// RegisterRoutes registers all editor routes on the API group.
func (r *EditorRoutes) RegisterRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	r.registerCatalogRoutes(api)
	r.registerSessionRoutes(api, cfg)
	r.registerTierRoutes(api, cfg)
	r.registerGenerativeRoutes(api)
}

// registerCatalogRoutes registers the read-only product catalog routes.
func (r *EditorRoutes) registerCatalogRoutes(api *gin.RouterGroup) {
	api.GET("/products", r.catalogHandler.ListProducts)
	api.GET("/products/:id", r.catalogHandler.GetProduct)
}

// registerSessionRoutes registers the design session lifecycle and editing
// routes. Checkout calls the external cart service, so it runs under a
// timeout wrapper.
func (r *EditorRoutes) registerSessionRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	api.POST("/sessions", r.editorHandler.CreateSession)

	checkoutTimeout := cfg.CheckoutTimeout
	if checkoutTimeout <= 0 {
		checkoutTimeout = 15 * time.Second
	}

	session := api.Group("/sessions/:id")
	{
		session.GET("", r.editorHandler.GetSession)
		session.POST("/zone", r.editorHandler.SwitchZone)
		session.POST("/text", r.editorHandler.AddText)
		session.POST("/images", r.editorHandler.InsertImage)
		session.PATCH("/objects/:objectID", r.editorHandler.ModifyObject)
		session.POST("/objects/:objectID/curve", r.editorHandler.SetCurve)
		session.POST("/objects/:objectID/arrange", r.editorHandler.ArrangeObject)
		session.DELETE("/objects/:objectID", r.editorHandler.DeleteObject)
		session.POST("/undo", r.editorHandler.Undo)
		session.POST("/redo", r.editorHandler.Redo)
		session.GET("/price", r.editorHandler.GetPrice)
		session.POST("/checkout", middleware.TimeoutWithDuration(checkoutTimeout), r.editorHandler.Checkout)
	}
}

// registerTierRoutes registers the price tier configuration routes. Reads are
// public; writes and history require an admin token.
func (r *EditorRoutes) registerTierRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if r.tiersHandler == nil {
		return
	}

	api.GET("/price-tiers", r.tiersHandler.GetActiveTiers)

	admin := api.Group("")
	if cfg.AdminJWTSecret != "" {
		admin.Use(middleware.AdminJWT(cfg.AdminJWTSecret))
	}
	admin.PUT("/price-tiers", r.tiersHandler.UpdateTiers)
	admin.GET("/price-tiers/history", r.tiersHandler.ListTiers)
}

// registerGenerativeRoutes registers the design suggestion routes.
func (r *EditorRoutes) registerGenerativeRoutes(api *gin.RouterGroup) {
	if r.generativeHandler == nil {
		return
	}
	api.POST("/generate/quotes", r.generativeHandler.GenerateQuotes)
	api.POST("/generate/images", r.generativeHandler.GenerateImages)
}
