package store

import (
	"context"
	"testing"

	"character-studio/backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteFlags(t *testing.T) {
	votes := NewRatingStore(storage.NewMemoryAdapter())
	ctx := context.Background()

	prior, err := votes.Vote(ctx, "client-1", "c1")
	require.NoError(t, err)
	assert.Empty(t, prior)

	require.NoError(t, votes.MarkVoted(ctx, "client-1", "c1", "like"))

	prior, err = votes.Vote(ctx, "client-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "like", prior)

	// Flags are scoped per client and per character.
	prior, err = votes.Vote(ctx, "client-2", "c1")
	require.NoError(t, err)
	assert.Empty(t, prior)

	prior, err = votes.Vote(ctx, "client-1", "c2")
	require.NoError(t, err)
	assert.Empty(t, prior)
}
