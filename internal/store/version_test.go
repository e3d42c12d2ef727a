package store

import (
	"context"
	"testing"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionHistoryGrowsInOrder(t *testing.T) {
	versions := NewVersionStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	require.NoError(t, versions.Record(ctx, "c1", models.Character{Name: "first"}, []string{"name"}))
	require.NoError(t, versions.Record(ctx, "c1", models.Character{Name: "second"}, []string{"name"}))

	history, err := versions.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Data.Name)
	assert.Equal(t, "second", history[1].Data.Name)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestVersionListEmptyForUnknownCharacter(t *testing.T) {
	versions := NewVersionStore(storage.NewMemoryAdapter())

	history, err := versions.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestVersionGet(t *testing.T) {
	versions := NewVersionStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	require.NoError(t, versions.Record(ctx, "c1", models.Character{Name: "snap"}, nil))
	history, err := versions.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	got, err := versions.Get(ctx, "c1", history[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "snap", got.Data.Name)

	got, err = versions.Get(ctx, "c1", "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVersionDeleteFor(t *testing.T) {
	versions := NewVersionStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	require.NoError(t, versions.Record(ctx, "c1", models.Character{}, nil))
	require.NoError(t, versions.Record(ctx, "c2", models.Character{}, nil))

	require.NoError(t, versions.DeleteFor(ctx, "c1"))

	ids, err := versions.CharacterIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)

	// Deleting an absent history is a no-op.
	require.NoError(t, versions.DeleteFor(ctx, "c1"))
}
