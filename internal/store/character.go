package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"character-studio/backend/internal/models"
	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/storage"

	"github.com/google/uuid"
)

// CharacterStore owns the primary character collection. Updates snapshot the
// prior state into the version store before anything is applied; lookups
// fall through to the shared-clone collection so shared ids resolve the same
// way as primary ids.
type CharacterStore struct {
	mu       sync.Mutex
	adapter  storage.Adapter
	versions *VersionStore
	shared   *SharedStore
}

func NewCharacterStore(adapter storage.Adapter, versions *VersionStore, shared *SharedStore) *CharacterStore {
	return &CharacterStore{adapter: adapter, versions: versions, shared: shared}
}

// Create assigns an id and timestamps, enforces the identity-triple
// uniqueness check and persists the grown collection. Uniqueness is only
// checked here: updates may freely collide.
func (s *CharacterStore) Create(ctx context.Context, character *models.Character) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}

	for i := range characters {
		if models.SameIdentity(&characters[i], character) {
			return nil, apperrors.NewDuplicateError(
				fmt.Sprintf("a character named %q with the same gender and age already exists", characters[i].Name))
		}
	}

	now := time.Now().UTC()
	character.ID = uuid.New().String()
	character.CreatedAt = now
	character.UpdatedAt = now
	if character.Ratings == nil {
		character.Ratings = &models.Ratings{}
	}

	characters = append(characters, *character)
	if err := save(ctx, s.adapter, keyCharacters, characters); err != nil {
		return nil, err
	}
	return character, nil
}

// Update merges the patch over the stored record, recording the pre-update
// snapshot and the set of changed fields first. Restores go through here
// too, so history only ever grows.
func (s *CharacterStore) Update(ctx context.Context, id string, patch models.CharacterPatch) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}

	idx := -1
	for i := range characters {
		if characters[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("character %s not found", id))
	}

	before := characters[idx]
	updated := before
	patch.Apply(&updated)

	changes := models.ChangedFields(&before, &updated)
	if err := s.versions.Record(ctx, id, before, changes); err != nil {
		return nil, err
	}

	updated.UpdatedAt = time.Now().UTC()
	characters[idx] = updated
	if err := save(ctx, s.adapter, keyCharacters, characters); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetByID resolves a character id against the primary collection, then the
// shared-clone collection. Absence in both is not an error: (nil, nil).
func (s *CharacterStore) GetByID(ctx context.Context, id string) (*models.Character, error) {
	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}
	for i := range characters {
		if characters[i].ID == id {
			c := characters[i]
			return &c, nil
		}
	}

	shared, err := s.shared.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shared != nil {
		c := shared.Character
		return &c, nil
	}
	return nil, nil
}

// Delete removes the character from the primary collection. It does not
// cascade: versions, folder memberships and relationship edges stay behind
// and are filtered lazily at read time (or swept by Compact).
func (s *CharacterStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return false, err
	}

	kept := characters[:0]
	found := false
	for i := range characters {
		if characters[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, characters[i])
	}
	if !found {
		return false, nil
	}
	if err := save(ctx, s.adapter, keyCharacters, kept); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the raw collection, including any soft-corrupted entries.
func (s *CharacterStore) List(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}
	if characters == nil {
		characters = []models.Character{}
	}
	return characters, nil
}

// ListValid is the self-healing read: entries with a blank id, or whose id
// duplicates an earlier entry, are dropped, and when anything was dropped
// the cleaned collection is written back.
func (s *CharacterStore) ListValid(ctx context.Context) ([]models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(characters))
	valid := make([]models.Character, 0, len(characters))
	for i := range characters {
		id := characters[i].ID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		valid = append(valid, characters[i])
	}

	if len(valid) != len(characters) {
		if err := save(ctx, s.adapter, keyCharacters, valid); err != nil {
			return nil, err
		}
	}
	return valid, nil
}

// IncrementRating bumps one of the aggregate counters. This is a plain
// read-modify-write of the whole collection, like every other mutation.
func (s *CharacterStore) IncrementRating(ctx context.Context, id string, rating string) (*models.Ratings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var characters []models.Character
	if err := load(ctx, s.adapter, keyCharacters, &characters); err != nil {
		return nil, err
	}

	for i := range characters {
		if characters[i].ID != id {
			continue
		}
		if characters[i].Ratings == nil {
			characters[i].Ratings = &models.Ratings{}
		}
		switch rating {
		case "like":
			characters[i].Ratings.Likes++
		case "dislike":
			characters[i].Ratings.Dislikes++
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown rating %q", rating))
		}
		if err := save(ctx, s.adapter, keyCharacters, characters); err != nil {
			return nil, err
		}
		counters := *characters[i].Ratings
		return &counters, nil
	}
	return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("character %s not found", id))
}
