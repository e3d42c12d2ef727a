package store

import (
	"context"
	"encoding/json"
	"testing"

	"character-studio/backend/internal/models"
	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) (*CharacterStore, *VersionStore, *SharedStore, storage.Adapter) {
	t.Helper()
	adapter := storage.NewMemoryAdapter()
	versions := NewVersionStore(adapter)
	shared := NewSharedStore(adapter)
	characters := NewCharacterStore(adapter, versions, shared)
	return characters, versions, shared, adapter
}

func TestCreateAssignsIdentity(t *testing.T) {
	characters, _, _, _ := newTestStores(t)
	ctx := context.Background()

	created, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.NotNil(t, created.Ratings)
	assert.Equal(t, 0, created.Ratings.Likes)
}

func TestCreateRejectsDuplicateIdentity(t *testing.T) {
	characters, _, _, _ := newTestStores(t)
	ctx := context.Background()

	_, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)

	// Same triple with a different name casing still collides.
	_, err = characters.Create(ctx, &models.Character{Name: "ARIA", Gender: "female", Age: "25"})
	assert.True(t, apperrors.IsDuplicate(err))

	// Changing any one component of the triple is allowed.
	_, err = characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "26"})
	assert.NoError(t, err)
}

func TestUpdateRecordsSnapshotFirst(t *testing.T) {
	characters, versions, _, _ := newTestStores(t)
	ctx := context.Background()

	created, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)

	updated, err := characters.Update(ctx, created.ID, models.CharacterPatch{"name": "Arya", "age": "26"})
	require.NoError(t, err)
	assert.Equal(t, "Arya", updated.Name)
	assert.Equal(t, "26", updated.Age)

	history, err := versions.List(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	// The snapshot is the pre-update state.
	assert.Equal(t, "Aria", history[0].Data.Name)
	assert.ElementsMatch(t, []string{"name", "age"}, history[0].Changes)
}

func TestUpdateUnknownCharacter(t *testing.T) {
	characters, _, _, _ := newTestStores(t)

	_, err := characters.Update(context.Background(), "missing", models.CharacterPatch{"name": "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteDoesNotCascade(t *testing.T) {
	characters, versions, _, _ := newTestStores(t)
	ctx := context.Background()

	created, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)
	_, err = characters.Update(ctx, created.ID, models.CharacterPatch{"name": "Arya"})
	require.NoError(t, err)

	deleted, err := characters.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := characters.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// History stays behind until a compaction sweep.
	history, err := versions.List(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	deleted, err = characters.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetByIDFallsThroughToShared(t *testing.T) {
	characters, _, shared, _ := newTestStores(t)
	ctx := context.Background()

	created, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)
	clone, err := shared.Share(ctx, created)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, clone.Character.ID)

	got, err := characters.GetByID(ctx, clone.Character.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aria", got.Name)
}

func TestListValidHealsCorruptEntries(t *testing.T) {
	characters, _, _, adapter := newTestStores(t)
	ctx := context.Background()

	raw, err := json.Marshal([]models.Character{
		{ID: "a", Name: "Aria"},
		{ID: "", Name: "no id"},
		{ID: "a", Name: "duplicate id"},
		{ID: "b", Name: "Bren"},
	})
	require.NoError(t, err)
	require.NoError(t, adapter.Set(ctx, keyCharacters, raw))

	valid, err := characters.ListValid(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	assert.Equal(t, "Aria", valid[0].Name)
	assert.Equal(t, "Bren", valid[1].Name)

	// The cleaned collection was written back.
	all, err := characters.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIncrementRating(t *testing.T) {
	characters, _, _, _ := newTestStores(t)
	ctx := context.Background()

	created, err := characters.Create(ctx, &models.Character{Name: "Aria", Gender: "female", Age: "25"})
	require.NoError(t, err)

	counters, err := characters.IncrementRating(ctx, created.ID, "like")
	require.NoError(t, err)
	assert.Equal(t, 1, counters.Likes)
	assert.Equal(t, 0, counters.Dislikes)

	counters, err = characters.IncrementRating(ctx, created.ID, "dislike")
	require.NoError(t, err)
	assert.Equal(t, 1, counters.Likes)
	assert.Equal(t, 1, counters.Dislikes)

	_, err = characters.IncrementRating(ctx, created.ID, "meh")
	assert.True(t, apperrors.IsValidation(err))

	_, err = characters.IncrementRating(ctx, "missing", "like")
	assert.True(t, apperrors.IsNotFound(err))
}
