package api

import (
	"net/http"

	"character-studio/backend/internal/models"
	"character-studio/backend/internal/store"
	apperrors "character-studio/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RelationshipHandler serves the relationship map and graph endpoints.
// It talks to the store directly; there is no orchestration to do.
type RelationshipHandler struct {
	relationships *store.RelationshipStore
	characters    *store.CharacterStore
}

func NewRelationshipHandler(relationships *store.RelationshipStore, characters *store.CharacterStore) *RelationshipHandler {
	return &RelationshipHandler{relationships: relationships, characters: characters}
}

type setRelationshipRequest struct {
	IDA         string `json:"idA"`
	IDB         string `json:"idB"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CustomType  string `json:"customType"`
}

func (h *RelationshipHandler) SetRelationship(c *gin.Context) {
	var req setRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError(err.Error()))
		return
	}
	err := h.relationships.Set(c.Request.Context(), req.IDA, req.IDB,
		models.RelationshipType(req.Type), req.Description, req.CustomType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"set": true})
}

func (h *RelationshipHandler) RemoveRelationship(c *gin.Context) {
	idA := c.Query("idA")
	idB := c.Query("idB")
	if idA == "" || idB == "" {
		c.Error(apperrors.NewValidationError("idA and idB query parameters are required"))
		return
	}
	removed, err := h.relationships.Remove(c.Request.Context(), idA, idB)
	if err != nil {
		c.Error(err)
		return
	}
	if !removed {
		c.Error(apperrors.NewNotFoundError(apperrors.CodeNotFound, "relationship not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// GetRelationships returns the symmetric adjacency view.
func (h *RelationshipHandler) GetRelationships(c *gin.Context) {
	adjacency, err := h.relationships.Adjacency(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, adjacency)
}

// GetGraph returns the render-ready node/link view; dangling edges are
// skipped, not deleted.
func (h *RelationshipHandler) GetGraph(c *gin.Context) {
	characters, err := h.characters.ListValid(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	graph, err := h.relationships.Graph(c.Request.Context(), characters)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (h *RelationshipHandler) RemoveAllForCharacter(c *gin.Context) {
	if err := h.relationships.RemoveAllForCharacter(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
