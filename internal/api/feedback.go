package api

import (
	"net/http"

	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler relays user feedback to the configured webhook.
type FeedbackHandler struct {
	service *service.FeedbackService
}

func NewFeedbackHandler(service *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) PostFeedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	if err := h.service.Send(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
