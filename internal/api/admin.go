package api

import (
	"net/http"

	"character-studio/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the explicit repair operation.
type AdminHandler struct {
	compact *service.CompactService
}

func NewAdminHandler(compact *service.CompactService) *AdminHandler {
	return &AdminHandler{compact: compact}
}

func (h *AdminHandler) RunCompact(c *gin.Context) {
	report, err := h.compact.Run(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}
