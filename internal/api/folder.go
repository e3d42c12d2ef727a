package api

import (
	"net/http"

	"character-studio/backend/internal/service"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FolderHandler serves the folder grouping endpoints.
type FolderHandler struct {
	service *service.FolderService
}

func NewFolderHandler(service *service.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

type folderNameRequest struct {
	Name string `json:"name"`
}

func (h *FolderHandler) CreateFolder(c *gin.Context) {
	var req folderNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	folder, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

func (h *FolderHandler) ListFolders(c *gin.Context) {
	all := c.Query("all") == "true"
	folders, err := h.service.List(c.Request.Context(), all)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, folders)
}

func (h *FolderHandler) RenameFolder(c *gin.Context) {
	var req folderNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	ok, err := h.service.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"renamed": true})
}

func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	ok, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type addCharacterRequest struct {
	CharacterID string `json:"characterId"`
}

func (h *FolderHandler) AddCharacter(c *gin.Context) {
	var req addCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	ok, err := h.service.AddCharacter(c.Request.Context(), c.Param("id"), req.CharacterID)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

func (h *FolderHandler) RemoveCharacter(c *gin.Context) {
	ok, err := h.service.RemoveCharacter(c.Request.Context(), c.Param("id"), c.Param("characterId"))
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder or character not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

type moveCharacterRequest struct {
	CharacterID string `json:"characterId"`
	FromID      string `json:"fromFolderId"`
	ToID        string `json:"toFolderId"`
	ToIndex     *int   `json:"toIndex"`
}

func (h *FolderHandler) MoveCharacter(c *gin.Context) {
	var req moveCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	toIndex := -1
	if req.ToIndex != nil {
		toIndex = *req.ToIndex
	}
	ok, err := h.service.Move(c.Request.Context(), req.CharacterID, req.FromID, req.ToID, toIndex)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder or character not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": true})
}

type reorderRequest struct {
	Order []string `json:"order"`
}

func (h *FolderHandler) ReorderFolder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	ok, err := h.service.Reorder(c.Request.Context(), c.Param("id"), req.Order)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reordered": true})
}

func (h *FolderHandler) ResyncFolder(c *gin.Context) {
	ok, err := h.service.Resync(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "folder not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"resynced": true})
}
