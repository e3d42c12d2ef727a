package store

import (
	"context"
	"encoding/json"
	"testing"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(id, name string) models.CharacterSummary {
	return models.CharacterSummary{ID: id, Name: name}
}

func TestFolderCreateRenameDelete(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Villains")
	require.NoError(t, err)
	assert.NotEmpty(t, folder.ID)
	assert.Empty(t, folder.Characters)

	ok, err := folders.Rename(ctx, folder.ID, "Antagonists")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = folders.Rename(ctx, "missing", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = folders.Delete(ctx, folder.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFolderAddCharacterIdempotent(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Heroes")
	require.NoError(t, err)

	ok, err := folders.AddCharacter(ctx, folder.ID, summary("c1", "Aria"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = folders.AddCharacter(ctx, folder.ID, summary("c1", "Aria renamed"))
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Characters, 1)
	// The first summary wins; re-adding does not refresh it.
	assert.Equal(t, "Aria", all[0].Characters[0].Name)
}

func TestFolderMoveAcrossFolders(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	src, err := folders.Create(ctx, "Drafts")
	require.NoError(t, err)
	dst, err := folders.Create(ctx, "Finished")
	require.NoError(t, err)

	_, err = folders.AddCharacter(ctx, src.ID, summary("c1", "Aria"))
	require.NoError(t, err)

	ok, err := folders.MoveCharacter(ctx, "c1", src.ID, dst.ID, -1)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	byID := map[string]models.Folder{}
	for _, f := range all {
		byID[f.ID] = f
	}
	assert.Empty(t, byID[src.ID].Characters)
	require.Len(t, byID[dst.ID].Characters, 1)
	assert.Equal(t, "c1", byID[dst.ID].Characters[0].ID)
}

func TestFolderMoveWithinFolderReorders(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Cast")
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		_, err = folders.AddCharacter(ctx, folder.ID, summary(id, "name-"+id))
		require.NoError(t, err)
	}

	ok, err := folders.MoveCharacter(ctx, "c", folder.ID, folder.ID, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	ids := make([]string, 0, 3)
	for _, m := range all[0].Characters {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestFolderReorderKeepsLeftovers(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Cast")
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err = folders.AddCharacter(ctx, folder.ID, summary(id, "name-"+id))
		require.NoError(t, err)
	}

	// Order only names two members plus an unknown id; the rest keep their
	// relative order at the end.
	ok, err := folders.Reorder(ctx, folder.ID, []string{"c", "ghost", "a"})
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, 4)
	for _, m := range all[0].Characters {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
}

func TestListVisibleFiltersEmptyFolders(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	empty, err := folders.Create(ctx, "Empty")
	require.NoError(t, err)
	full, err := folders.Create(ctx, "Full")
	require.NoError(t, err)
	_, err = folders.AddCharacter(ctx, full.ID, summary("c1", "Aria"))
	require.NoError(t, err)

	visible, err := folders.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, full.ID, visible[0].ID)

	// The empty folder is hidden, not deleted.
	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = empty
}

func TestCorruptFoldersDroppedOnLoadAndCompact(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	folders := NewFolderStore(adapter)
	ctx := context.Background()

	raw, err := json.Marshal([]models.Folder{
		{ID: "f1", Name: "ok", Characters: []models.CharacterSummary{}},
		{ID: "", Name: "no id", Characters: []models.CharacterSummary{}},
		{ID: "f3", Name: "nil members"},
		{ID: "f4", Name: "bad member", Characters: []models.CharacterSummary{{ID: "", Name: ""}}},
	})
	require.NoError(t, err)
	require.NoError(t, adapter.Set(ctx, keyFolders, raw))

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "f1", all[0].ID)

	// ListAll filtered in memory; Compact makes the repair durable.
	dropped, err := folders.Compact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)

	dropped, err = folders.Compact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
}

func TestFolderResync(t *testing.T) {
	folders := NewFolderStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Cast")
	require.NoError(t, err)
	_, err = folders.AddCharacter(ctx, folder.ID, summary("c1", "Old Name"))
	require.NoError(t, err)
	_, err = folders.AddCharacter(ctx, folder.ID, summary("gone", "Deleted"))
	require.NoError(t, err)

	ok, err := folders.Resync(ctx, folder.ID, func(id string) *models.CharacterSummary {
		if id == "c1" {
			return &models.CharacterSummary{ID: "c1", Name: "New Name", ImageURL: "/img.png"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := folders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all[0].Characters, 2)
	assert.Equal(t, "New Name", all[0].Characters[0].Name)
	assert.Equal(t, "/img.png", all[0].Characters[0].ImageURL)
	// Unresolvable members keep their stale summary.
	assert.Equal(t, "Deleted", all[0].Characters[1].Name)
}
