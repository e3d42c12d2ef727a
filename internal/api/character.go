package api

import (
	"fmt"
	"net/http"

	"character-studio/backend/internal/export"
	"character-studio/backend/internal/models"
	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CharacterHandler serves the character CRUD, version history and export
// endpoints.
type CharacterHandler struct {
	service *service.CharacterService
}

func NewCharacterHandler(service *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var req service.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	character, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	characters, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	id := c.Param("id")
	character, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if character == nil {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("character %s not found", id)))
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	var patch models.CharacterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	character, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "character not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *CharacterHandler) ListVersions(c *gin.Context) {
	versions, err := h.service.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *CharacterHandler) GetVersion(c *gin.Context) {
	version, err := h.service.Version(c.Request.Context(), c.Param("id"), c.Param("versionId"))
	if err != nil {
		c.Error(err)
		return
	}
	if version == nil {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "version not found"))
		return
	}
	c.JSON(http.StatusOK, version)
}

func (h *CharacterHandler) RestoreVersion(c *gin.Context) {
	character, err := h.service.Restore(c.Request.Context(), c.Param("id"), c.Param("versionId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// ExportCharacter streams one character in the requested download format.
func (h *CharacterHandler) ExportCharacter(c *gin.Context) {
	id := c.Param("id")
	character, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if character == nil {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "character not found"))
		return
	}

	format := c.DefaultQuery("format", "text")
	filename := character.Name
	if filename == "" {
		filename = character.ID
	}

	switch format {
	case "text":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".txt"))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.PlainText(character)))
	case "bracket":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+"_bracket.txt"))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Bracket(character)))
	case "json":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".json"))
		c.JSON(http.StatusOK, export.JSONBundle(character))
	default:
		c.Error(apperrors.NewValidationError(fmt.Sprintf("unknown export format %q", format)))
	}
}
