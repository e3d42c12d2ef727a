package store

import (
	"context"
	"sync"
	"time"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/storage"

	"github.com/google/uuid"
)

// SharedStore holds the read-only public clones. A clone copies the source
// character's profile fields under a fresh id, so the owner's primary
// collection is never exposed and later edits to the original do not leak.
type SharedStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
}

func NewSharedStore(adapter storage.Adapter) *SharedStore {
	return &SharedStore{adapter: adapter}
}

// Share clones the character into the shared collection and returns the
// clone with its new id.
func (s *SharedStore) Share(ctx context.Context, source *models.Character) (*models.SharedCharacter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []models.SharedCharacter
	if err := load(ctx, s.adapter, keyShared, &shared); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clone := models.SharedCharacter{
		Character:  *source,
		IsShared:   true,
		OriginalID: source.ID,
		SharedAt:   now,
	}
	clone.Character.ID = uuid.New().String()
	clone.Character.CreatedAt = now
	clone.Character.UpdatedAt = now
	clone.Character.Ratings = &models.Ratings{}

	shared = append(shared, clone)
	if err := save(ctx, s.adapter, keyShared, shared); err != nil {
		return nil, err
	}
	return &clone, nil
}

// GetByID returns the clone with the given id, or nil.
func (s *SharedStore) GetByID(ctx context.Context, id string) (*models.SharedCharacter, error) {
	var shared []models.SharedCharacter
	if err := load(ctx, s.adapter, keyShared, &shared); err != nil {
		return nil, err
	}
	for i := range shared {
		if shared[i].Character.ID == id {
			c := shared[i]
			return &c, nil
		}
	}
	return nil, nil
}

// List returns every shared clone.
func (s *SharedStore) List(ctx context.Context) ([]models.SharedCharacter, error) {
	var shared []models.SharedCharacter
	if err := load(ctx, s.adapter, keyShared, &shared); err != nil {
		return nil, err
	}
	if shared == nil {
		shared = []models.SharedCharacter{}
	}
	return shared, nil
}
