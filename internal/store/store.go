// Package store implements the persistence layer: one store per collection,
// all reading and writing whole serialized collections through a single
// storage adapter. There is no partial persistence; every mutation loads the
// collection, applies the change in memory and writes the collection back.
package store

import (
	"context"
	"encoding/json"

	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/storage"
	"character-studio/backend/shared/observability"
)

// Storage keys, one per persisted collection.
const (
	keyCharacters    = "characters"
	keyVersions      = "versions"
	keyShared        = "shared_characters"
	keyFolders       = "folders"
	keyRelationships = "relationships"
	keyRatingVotes   = "rating_votes"
)

// load reads and decodes a collection. A missing key yields the zero value,
// not an error: an empty store looks the same as a never-written one.
func load[T any](ctx context.Context, adapter storage.Adapter, key string, dst *T) error {
	data, err := adapter.Get(ctx, key)
	if err == storage.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.NewStorageError(err)
	}
	observability.CountStoreOp(key, "load")
	return nil
}

// save encodes and writes a whole collection back.
func save(ctx context.Context, adapter storage.Adapter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if err := adapter.Set(ctx, key, data); err != nil {
		return apperrors.NewStorageError(err)
	}
	observability.CountStoreOp(key, "save")
	return nil
}
