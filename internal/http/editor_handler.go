// Package http provides the HTTP handlers and routing for the engraving service.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/i18n"
	"github.com/guttosm/engraving-service/internal/middleware"
	"github.com/guttosm/engraving-service/internal/service"
)

// EditorHandler provides HTTP handlers for the design editor routes.
type EditorHandler struct {
	editor   service.Editor
	checkout service.CheckoutService
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(editor service.Editor, checkout service.CheckoutService) *EditorHandler {
	return &EditorHandler{
		editor:   editor,
		checkout: checkout,
	}
}

// editorError maps a service error to an HTTP status and message key.
func editorError(b *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		b.Error(http.StatusNotFound, i18n.ErrKeySessionNotFound, err)
	case errors.Is(err, service.ErrUnknownProduct), errors.Is(err, service.ErrUnknownVariation):
		b.Error(http.StatusNotFound, i18n.ErrKeyUnknownProduct, err)
	case errors.Is(err, service.ErrInvalidUpload):
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidUpload, err)
	case errors.Is(err, service.ErrPricingInFlight):
		b.Error(http.StatusConflict, i18n.ErrKeyPricingInFlight, err)
	case errors.Is(err, service.ErrPricingUnavailable):
		b.Error(http.StatusBadGateway, i18n.ErrKeyPricingUnavailable, err)
	case errors.Is(err, service.ErrEmptyDesign):
		b.Error(http.StatusBadRequest, i18n.ErrKeyEmptyDesign, err)
	case errors.Is(err, client.ErrServiceUnavailable):
		b.Error(http.StatusBadGateway, i18n.ErrKeyCartUnavailable, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// auditEditorAction writes an async audit entry for an editor mutation.
func auditEditorAction(c *gin.Context, sessionID, action string, fields map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditEditorLog(ls, c, sessionID, action, fields)
		}
	}
}

// CreateSession handles POST /api/sessions requests.
//
// @Summary      Open a design session
// @Description  Opens an editing session for a customizable product variation. Each engraving zone starts with an empty history; the first zone is active and the price starts at the variation's base price.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateSessionRequest true "Product and variation to customize"
// @Success      201 {object} dto.SuccessResponse "Session created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Unknown product or variation"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/sessions [post]
func (h *EditorHandler) CreateSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateSessionRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.CreateSession(c.Request.Context(), req.ProductID, req.VariationID)
	if err != nil {
		editorError(builder, err)
		return
	}

	auditEditorAction(c, state.ID, "create_session", map[string]interface{}{
		"product_id":   req.ProductID,
		"variation_id": req.VariationID,
	})
	builder.SuccessCreated(state)
}

// GetSession handles GET /api/sessions/:id requests.
//
// @Summary      Get session state
// @Description  Returns the current state of a design session: zones, active zone layers, derived price and undo/redo availability.
// @Tags         Sessions
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} dto.SuccessResponse "Session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id} [get]
func (h *EditorHandler) GetSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	state, err := h.editor.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// SwitchZone handles POST /api/sessions/:id/zone requests.
//
// @Summary      Switch the active zone
// @Description  Persists the active zone's content, then activates the target zone and restores its stored content. Switching to the current or an unknown zone leaves the session unchanged.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body dto.SwitchZoneRequest true "Target zone"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/zone [post]
func (h *EditorHandler) SwitchZone(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.SwitchZoneRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.SwitchZone(c.Request.Context(), c.Param("id"), req.ZoneID)
	if err != nil {
		editorError(builder, err)
		return
	}

	auditEditorAction(c, state.ID, "switch_zone", map[string]interface{}{"zone_id": req.ZoneID})
	builder.SuccessOK(state)
}

// AddText handles POST /api/sessions/:id/objects/text requests.
//
// @Summary      Add a text layer
// @Description  Creates a material-styled text layer centered in the active zone. New layers are clamped to fit within the zone and the derived price updates immediately.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body dto.AddTextRequest true "Text layer parameters"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/objects/text [post]
func (h *EditorHandler) AddText(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.AddTextRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.AddText(c.Request.Context(), c.Param("id"), service.TextParams{
		Text:       req.Text,
		FontFamily: req.FontFamily,
		FontSize:   req.FontSize,
		Align:      req.Align,
	})
	if err != nil {
		editorError(builder, err)
		return
	}

	auditEditorAction(c, state.ID, "add_text", map[string]interface{}{"characters": len(req.Text)})
	builder.SuccessOK(state)
}

// InsertImage handles POST /api/sessions/:id/objects/image requests.
//
// @Summary      Insert a priced image
// @Description  Validates the upload, obtains an engraving fee quote from the external pricing service and inserts the priced layer. On pricing failure nothing is inserted. While a quote is in flight further inserts and checkout are rejected.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body dto.InsertImageRequest true "Image payload"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Invalid upload"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Failure      409 {object} dto.ErrorResponse "A pricing request is already in flight"
// @Failure      502 {object} dto.ErrorResponse "Image pricing unavailable"
// @Router       /api/sessions/{id}/objects/image [post]
func (h *EditorHandler) InsertImage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.InsertImageRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.InsertPricedImage(c.Request.Context(), c.Param("id"), req.Payload, req.ObjectKind())
	if err != nil {
		editorError(builder, err)
		return
	}

	auditEditorAction(c, state.ID, "insert_image", map[string]interface{}{"kind": string(req.ObjectKind())})
	builder.SuccessOK(state)
}

// ModifyObject handles PATCH /api/sessions/:id/objects/:objectID requests.
//
// @Summary      Modify an object
// @Description  Applies a partial property update to a design object. Resizing a text layer folds the scale factors back into its font size. Unknown object ids leave the state unchanged.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        objectID path string true "Object id"
// @Param        request body dto.ModifyObjectRequest true "Properties to update"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/objects/{objectID} [patch]
func (h *EditorHandler) ModifyObject(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ModifyObjectRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.Modify(c.Request.Context(), c.Param("id"), c.Param("objectID"), service.ObjectPatch{
		Text:       req.Text,
		FontFamily: req.FontFamily,
		FontSize:   req.FontSize,
		Fill:       req.Fill,
		Align:      req.Align,
		Bold:       req.Bold,
		Italic:     req.Italic,
		Underline:  req.Underline,
		X:          req.X,
		Y:          req.Y,
		Angle:      req.Angle,
		Opacity:    req.Opacity,
		Width:      req.Width,
		Height:     req.Height,
		ScaleX:     req.ScaleX,
		ScaleY:     req.ScaleY,
	})
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// SetCurve handles POST /api/sessions/:id/objects/:objectID/curve requests.
//
// @Summary      Curve a text baseline
// @Description  Sets a text layer's baseline curvature in [-100, 100]. Positive values arc upward, negative downward, zero restores a straight baseline.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        objectID path string true "Object id"
// @Param        request body dto.CurveRequest true "Curve value"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/objects/{objectID}/curve [post]
func (h *EditorHandler) SetCurve(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CurveRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.SetCurve(c.Request.Context(), c.Param("id"), c.Param("objectID"), req.Curve)
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// ArrangeObject handles POST /api/sessions/:id/objects/:objectID/arrange requests.
//
// @Summary      Reorder an object
// @Description  Moves a design object within the zone's stacking order. The zone guide overlay always stays at the back.
// @Tags         Editing
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        objectID path string true "Object id"
// @Param        request body dto.ArrangeRequest true "Direction"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/objects/{objectID}/arrange [post]
func (h *EditorHandler) ArrangeObject(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ArrangeRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	state, err := h.editor.Arrange(c.Request.Context(), c.Param("id"), c.Param("objectID"), req.Direction)
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// DeleteObject handles DELETE /api/sessions/:id/objects/:objectID requests.
//
// @Summary      Delete an object
// @Description  Removes a design object from the active zone and clears the selection. Unknown object ids leave the state unchanged.
// @Tags         Editing
// @Produce      json
// @Param        id path string true "Session id"
// @Param        objectID path string true "Object id"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/objects/{objectID} [delete]
func (h *EditorHandler) DeleteObject(c *gin.Context) {
	builder := NewResponseBuilder(c)

	state, err := h.editor.Delete(c.Request.Context(), c.Param("id"), c.Param("objectID"))
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// Undo handles POST /api/sessions/:id/undo requests.
//
// @Summary      Undo
// @Description  Steps the active zone one entry back in its history and restores that snapshot. At the oldest entry the state is unchanged.
// @Tags         Editing
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/undo [post]
func (h *EditorHandler) Undo(c *gin.Context) {
	builder := NewResponseBuilder(c)

	state, err := h.editor.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// Redo handles POST /api/sessions/:id/redo requests.
//
// @Summary      Redo
// @Description  Steps the active zone one entry forward in its history. At the newest entry the state is unchanged.
// @Tags         Editing
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} dto.SuccessResponse "Updated session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/redo [post]
func (h *EditorHandler) Redo(c *gin.Context) {
	builder := NewResponseBuilder(c)

	state, err := h.editor.Redo(c.Request.Context(), c.Param("id"))
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(state)
}

// GetPrice handles GET /api/sessions/:id/price requests.
//
// @Summary      Get the derived price
// @Description  Returns the current price details: base price, tiered text fee across all zones, accumulated image fees and the total.
// @Tags         Pricing
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} dto.SuccessResponse "Price details"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Router       /api/sessions/{id}/price [get]
func (h *EditorHandler) GetPrice(c *gin.Context) {
	builder := NewResponseBuilder(c)

	price, err := h.editor.Price(c.Request.Context(), c.Param("id"))
	if err != nil {
		editorError(builder, err)
		return
	}
	builder.SuccessOK(price)
}

// Checkout handles POST /api/sessions/:id/checkout requests.
//
// @Summary      Check out the design
// @Description  Renders the composite preview, bundles the design into cart line items (parent product line plus fee lines sharing a bundle id) and adds them to the cart. Rejected while an image pricing request is in flight or when the design is empty.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body dto.CheckoutRequest true "Target cart"
// @Success      200 {object} dto.SuccessResponse "Updated cart"
// @Failure      400 {object} dto.ErrorResponse "Empty design"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Failure      409 {object} dto.ErrorResponse "A pricing request is in flight"
// @Failure      502 {object} dto.ErrorResponse "Cart service unavailable"
// @Router       /api/sessions/{id}/checkout [post]
func (h *EditorHandler) Checkout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}

	sessionID := c.Param("id")
	cart, err := h.checkout.Checkout(c.Request.Context(), sessionID, req.CartID)
	if err != nil {
		editorError(builder, err)
		return
	}

	auditEditorAction(c, sessionID, "checkout", map[string]interface{}{"cart_id": cart.ID})
	builder.SuccessOK(cart)
}
