package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"

	"character-studio/backend/internal/models"
	"character-studio/backend/internal/store"
	"character-studio/backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildZip(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	versions := store.NewVersionStore(adapter)
	shared := store.NewSharedStore(adapter)
	characters := store.NewCharacterStore(adapter, versions, shared)
	svc := NewBackupService(characters)
	ctx := context.Background()

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	withImage, err := characters.Create(ctx, &models.Character{
		Name:     "Aria Stone",
		Gender:   "female",
		Age:      "25",
		ImageURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
	})
	require.NoError(t, err)
	withoutImage, err := characters.Create(ctx, &models.Character{
		Name:     "Bren",
		ImageURL: "https://example.com/bren.png",
	})
	require.NoError(t, err)

	data, err := svc.BuildZip(ctx)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	byName := map[string]*zip.File{}
	for _, f := range zr.File {
		byName[f.Name] = f
	}

	jsonEntry := "Aria_Stone_" + withImage.ID + "/character.json"
	require.Contains(t, byName, jsonEntry)
	rc, err := byName[jsonEntry].Open()
	require.NoError(t, err)
	payload, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	var decoded models.Character
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "Aria Stone", decoded.Name)

	imageEntry := "Aria_Stone_" + withImage.ID + "/image.png"
	require.Contains(t, byName, imageEntry)
	rc, err = byName[imageEntry].Open()
	require.NoError(t, err)
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, image, raw)

	// URL-referenced images are not archived.
	assert.Contains(t, byName, "Bren_"+withoutImage.ID+"/character.json")
	assert.NotContains(t, byName, "Bren_"+withoutImage.ID+"/image.png")
}

func TestSanitizeEntryName(t *testing.T) {
	assert.Equal(t, "Aria_Stone", sanitizeEntryName("Aria Stone"))
	assert.Equal(t, "Brn", sanitizeEntryName("Brén!?"))
	assert.Equal(t, "character", sanitizeEntryName("..."))
}
