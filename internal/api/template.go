package api

import (
	"net/http"

	"character-studio/backend/internal/export"
	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves the template listing and the bracket-format import
// used to map exported documents back onto profile fields.
type TemplateHandler struct {
	service *service.TemplateService
}

func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

type importBracketRequest struct {
	Text string `json:"text"`
}

// ImportBracket parses a bracket-format document and returns the recovered
// character fields without persisting anything; the editor pre-fills its
// form from the response.
func (h *TemplateHandler) ImportBracket(c *gin.Context) {
	var req importBracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	character, err := export.ParseBracket(req.Text)
	if err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, character)
}
