package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/i18n"
)

// GenerativeHandler provides HTTP handlers for AI-assisted design suggestions.
type GenerativeHandler struct {
	generative client.GenerativeClient
}

// NewGenerativeHandler creates a new GenerativeHandler.
func NewGenerativeHandler(generative client.GenerativeClient) *GenerativeHandler {
	return &GenerativeHandler{generative: generative}
}

// GenerateQuotes handles POST /api/generate/quotes requests.
//
// @Summary      Suggest engraving quotes
// @Description  Returns short quote suggestions for a theme, produced by the generative text service.
// @Tags         Generative
// @Accept       json
// @Produce      json
// @Param        request body dto.GenerateQuotesRequest true "Theme and count"
// @Success      200 {object} dto.SuccessResponse "Suggested quotes"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      502 {object} dto.ErrorResponse "Generative service unavailable"
// @Router       /api/generate/quotes [post]
func (h *GenerativeHandler) GenerateQuotes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.GenerateQuotesRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	quotes, err := h.generative.GenerateQuotes(c.Request.Context(), req.Theme, req.Count)
	if err != nil {
		h.generativeError(builder, err)
		return
	}
	builder.SuccessOK(map[string]interface{}{"quotes": quotes})
}

// GenerateImages handles POST /api/generate/images requests.
//
// @Summary      Suggest engraving images
// @Description  Returns generated line-art images for a prompt, produced by the generative image service. The images can be inserted into a design session afterwards.
// @Tags         Generative
// @Accept       json
// @Produce      json
// @Param        request body dto.GenerateImagesRequest true "Prompt and count"
// @Success      200 {object} dto.SuccessResponse "Generated images"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      502 {object} dto.ErrorResponse "Generative service unavailable"
// @Router       /api/generate/images [post]
func (h *GenerativeHandler) GenerateImages(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.GenerateImagesRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	images, err := h.generative.GenerateImages(c.Request.Context(), req.Prompt, req.Count)
	if err != nil {
		h.generativeError(builder, err)
		return
	}
	builder.SuccessOK(map[string]interface{}{"images": images})
}

// generativeError maps generative client errors to HTTP responses.
func (h *GenerativeHandler) generativeError(b *ResponseBuilder, err error) {
	if errors.Is(err, client.ErrServiceUnavailable) {
		b.Error(http.StatusBadGateway, i18n.ErrKeyGenerativeUnavailable, err)
		return
	}
	b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}
