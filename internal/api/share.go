package api

import (
	"net/http"

	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ShareHandler serves the share relay and public shared-clone lookups.
type ShareHandler struct {
	service *service.CharacterService
}

func NewShareHandler(service *service.CharacterService) *ShareHandler {
	return &ShareHandler{service: service}
}

func (h *ShareHandler) ShareCharacter(c *gin.Context) {
	clone, err := h.service.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sharedId": clone.Character.ID})
}

func (h *ShareHandler) GetShared(c *gin.Context) {
	clone, err := h.service.Shared(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if clone == nil {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "shared character not found"))
		return
	}
	c.JSON(http.StatusOK, clone)
}
