package store

import (
	"context"
	"sync"
	"time"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/storage"

	"github.com/google/uuid"
)

// VersionStore keeps the append-only per-character history of prior
// snapshots, keyed by character id. Entries are never rewritten; the only
// way history shrinks is a Compact sweep after the owner was deleted.
type VersionStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
}

func NewVersionStore(adapter storage.Adapter) *VersionStore {
	return &VersionStore{adapter: adapter}
}

// Record appends a snapshot to the character's version list.
func (s *VersionStore) Record(ctx context.Context, characterID string, snapshot models.Character, changes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := make(map[string][]models.Version)
	if err := load(ctx, s.adapter, keyVersions, &versions); err != nil {
		return err
	}

	versions[characterID] = append(versions[characterID], models.Version{
		ID:        uuid.New().String(),
		Data:      snapshot,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	})
	return save(ctx, s.adapter, keyVersions, versions)
}

// List returns the character's versions in insertion order. Callers wanting
// most-recent-first display sort by timestamp themselves.
func (s *VersionStore) List(ctx context.Context, characterID string) ([]models.Version, error) {
	versions := make(map[string][]models.Version)
	if err := load(ctx, s.adapter, keyVersions, &versions); err != nil {
		return nil, err
	}
	list := versions[characterID]
	if list == nil {
		list = []models.Version{}
	}
	return list, nil
}

// Get returns one version by id, or nil when absent.
func (s *VersionStore) Get(ctx context.Context, characterID, versionID string) (*models.Version, error) {
	list, err := s.List(ctx, characterID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == versionID {
			v := list[i]
			return &v, nil
		}
	}
	return nil, nil
}

// DeleteFor drops a character's whole history. Only Compact calls this; a
// normal character delete leaves history orphaned on purpose.
func (s *VersionStore) DeleteFor(ctx context.Context, characterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions := make(map[string][]models.Version)
	if err := load(ctx, s.adapter, keyVersions, &versions); err != nil {
		return err
	}
	if _, ok := versions[characterID]; !ok {
		return nil
	}
	delete(versions, characterID)
	return save(ctx, s.adapter, keyVersions, versions)
}

// CharacterIDs lists every character id that has recorded history.
func (s *VersionStore) CharacterIDs(ctx context.Context) ([]string, error) {
	versions := make(map[string][]models.Version)
	if err := load(ctx, s.adapter, keyVersions, &versions); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(versions))
	for id := range versions {
		ids = append(ids, id)
	}
	return ids, nil
}
