package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"character-studio/backend/internal/service"
	"character-studio/backend/internal/store"
	"character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/logger"
	"character-studio/backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the full handler set over an in-memory adapter, with the
// same error middleware the real router installs.
func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter := storage.NewMemoryAdapter()
	log := logger.New(logger.Config{Level: "error"})

	versions := store.NewVersionStore(adapter)
	shared := store.NewSharedStore(adapter)
	characters := store.NewCharacterStore(adapter, versions, shared)
	folders := store.NewFolderStore(adapter)
	relationships := store.NewRelationshipStore(adapter)
	ratings := store.NewRatingStore(adapter)

	characterService := service.NewCharacterService(characters, versions, shared, log)
	folderService := service.NewFolderService(folders, characters)
	ratingService := service.NewRatingService(characters, ratings, log)

	characterHandler := NewCharacterHandler(characterService)
	folderHandler := NewFolderHandler(folderService)
	relationshipHandler := NewRelationshipHandler(relationships, characters)
	ratingHandler := NewRatingHandler(ratingService)
	shareHandler := NewShareHandler(characterService)

	r := gin.New()
	r.Use(errors.ErrorHandler())

	v1 := r.Group("/api/v1")
	v1.POST("/characters", characterHandler.CreateCharacter)
	v1.GET("/characters", characterHandler.ListCharacters)
	v1.GET("/characters/:id", characterHandler.GetCharacter)
	v1.PUT("/characters/:id", characterHandler.UpdateCharacter)
	v1.DELETE("/characters/:id", characterHandler.DeleteCharacter)
	v1.GET("/characters/:id/versions", characterHandler.ListVersions)
	v1.POST("/characters/:id/versions/:versionId/restore", characterHandler.RestoreVersion)
	v1.GET("/characters/:id/export", characterHandler.ExportCharacter)
	v1.POST("/characters/:id/rate", ratingHandler.RateCharacter)
	v1.POST("/characters/:id/share", shareHandler.ShareCharacter)
	v1.GET("/shared/:id", shareHandler.GetShared)
	v1.POST("/folders", folderHandler.CreateFolder)
	v1.GET("/folders", folderHandler.ListFolders)
	v1.POST("/folders/:id/characters", folderHandler.AddCharacter)
	v1.PUT("/relationships", relationshipHandler.SetRelationship)
	v1.GET("/relationships", relationshipHandler.GetRelationships)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func createCharacter(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/characters", gin.H{
		"name": name, "gender": "female", "age": "25",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

func TestCreateCharacterEndpoint(t *testing.T) {
	r := newTestAPI(t)

	id := createCharacter(t, r, "Aria")
	assert.NotEmpty(t, id)

	// A duplicate identity triple is rejected with a conflict.
	w := doJSON(t, r, http.MethodPost, "/api/v1/characters", gin.H{
		"name": "aria", "gender": "female", "age": "25",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, errors.CodeDuplicate, errorCode(t, w))

	// A nameless payload fails validation.
	w = doJSON(t, r, http.MethodPost, "/api/v1/characters", gin.H{"gender": "male"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.CodeValidation, errorCode(t, w))
}

func TestGetCharacterNotFound(t *testing.T) {
	r := newTestAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/characters/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errors.CodeNotFound, errorCode(t, w))
}

func TestUpdateVersionRestoreFlow(t *testing.T) {
	r := newTestAPI(t)
	id := createCharacter(t, r, "Aria")

	w := doJSON(t, r, http.MethodPut, "/api/v1/characters/"+id, gin.H{"personality": "bold"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/characters/"+id+"/versions", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var versions []struct {
		ID      string   `json:"id"`
		Changes []string `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, []string{"personality"}, versions[0].Changes)

	w = doJSON(t, r, http.MethodPost, "/api/v1/characters/"+id+"/versions/"+versions[0].ID+"/restore", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var restored struct {
		Personality string `json:"personality"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restored))
	assert.Empty(t, restored.Personality)
}

func TestDeleteCharacterEndpoint(t *testing.T) {
	r := newTestAPI(t)
	id := createCharacter(t, r, "Aria")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/characters/"+id, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/characters/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpointFormats(t *testing.T) {
	r := newTestAPI(t)
	id := createCharacter(t, r, "Aria")

	w := doJSON(t, r, http.MethodGet, "/api/v1/characters/"+id+"/export?format=bracket", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `Character("Aria")`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Aria_bracket.txt")

	w = doJSON(t, r, http.MethodGet, "/api/v1/characters/"+id+"/export", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Name: Aria")

	w = doJSON(t, r, http.MethodGet, "/api/v1/characters/"+id+"/export?format=pdf", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateEndpointRejectsSecondVote(t *testing.T) {
	r := newTestAPI(t)
	id := createCharacter(t, r, "Aria")
	headers := map[string]string{"X-Client-ID": "client-1"}

	w := doJSON(t, r, http.MethodPost, "/api/v1/characters/"+id+"/rate", gin.H{"rating": "like"}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/characters/"+id+"/rate", gin.H{"rating": "like"}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, errors.CodeAlreadyVoted, errorCode(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/v1/characters/"+id+"/rate", gin.H{"rating": "like"},
		map[string]string{"X-Client-ID": "client-2"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShareAndResolve(t *testing.T) {
	r := newTestAPI(t)
	id := createCharacter(t, r, "Aria")

	w := doJSON(t, r, http.MethodPost, "/api/v1/characters/"+id+"/share", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var shared struct {
		SharedID string `json:"sharedId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shared))
	require.NotEmpty(t, shared.SharedID)
	assert.NotEqual(t, id, shared.SharedID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/shared/"+shared.SharedID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aria")

	// Shared ids also resolve through the character lookup.
	w = doJSON(t, r, http.MethodGet, "/api/v1/characters/"+shared.SharedID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFolderEndpoints(t *testing.T) {
	r := newTestAPI(t)
	characterID := createCharacter(t, r, "Aria")

	w := doJSON(t, r, http.MethodPost, "/api/v1/folders", gin.H{"name": "Cast"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var folder struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folder))

	w = doJSON(t, r, http.MethodPost, "/api/v1/folders/"+folder.ID+"/characters",
		gin.H{"characterId": characterID}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/folders/"+folder.ID+"/characters",
		gin.H{"characterId": "missing"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Default listing shows only non-empty folders.
	w = doJSON(t, r, http.MethodGet, "/api/v1/folders", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), folder.ID)
}

func TestRelationshipEndpoints(t *testing.T) {
	r := newTestAPI(t)
	idA := createCharacter(t, r, "Aria")
	idB := createCharacter(t, r, "Bren")

	w := doJSON(t, r, http.MethodPut, "/api/v1/relationships",
		gin.H{"idA": idA, "idB": idB, "type": "rival", "description": "old grudge"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/relationships", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var adjacency map[string]map[string]struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adjacency))
	assert.Equal(t, "rival", adjacency[idA][idB].Type)
	assert.Equal(t, "rival", adjacency[idB][idA].Type)

	w = doJSON(t, r, http.MethodPut, "/api/v1/relationships",
		gin.H{"idA": idA, "idB": idA, "type": "friend"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
