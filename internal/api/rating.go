package api

import (
	"net/http"

	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves the rating relay. The voting client is identified by
// the X-Client-ID header when the frontend provides one, falling back to
// the request IP.
type RatingHandler struct {
	service *service.RatingService
}

func NewRatingHandler(service *service.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type rateRequest struct {
	Rating string `json:"rating"`
}

func (h *RatingHandler) RateCharacter(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	clientID := c.GetHeader("X-Client-ID")
	if clientID == "" {
		clientID = c.ClientIP()
	}

	counters, err := h.service.Rate(c.Request.Context(), clientID, c.Param("id"), req.Rating)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, counters)
}
