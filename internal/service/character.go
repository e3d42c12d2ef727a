package service

import (
	"context"
	"fmt"

	"character-studio/backend/internal/models"
	"character-studio/backend/internal/store"
	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxFieldLength = 20000

// CreateCharacterRequest carries a new character's profile fields.
type CreateCharacterRequest struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Age         string `json:"age"`
	Description string `json:"description"`
	Personality string `json:"personality"`
	Scenario    string `json:"scenario"`
	Greeting    string `json:"greeting"`
	Interests   string `json:"interests"`
	Background  string `json:"background"`
	Height      string `json:"height"`
	Language    string `json:"language"`
	Status      string `json:"status"`
	Occupation  string `json:"occupation"`
	Skills      string `json:"skills"`
	Appearance  string `json:"appearance"`
	Figure      string `json:"figure"`
	Attributes  string `json:"attributes"`
	Species     string `json:"species"`
	Habits      string `json:"habits"`
	Likes       string `json:"likes"`
	Dislikes    string `json:"dislikes"`
	ImageURL    string `json:"imageUrl"`
}

// Validate applies the structural checks on a create payload.
func (r CreateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Gender, validation.Length(0, 100)),
		validation.Field(&r.Age, validation.Length(0, 100)),
		validation.Field(&r.Description, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Personality, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Scenario, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Greeting, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Background, validation.Length(0, maxFieldLength)),
	)
}

func (r *CreateCharacterRequest) toCharacter() *models.Character {
	return &models.Character{
		Name:        r.Name,
		Gender:      r.Gender,
		Age:         r.Age,
		Description: r.Description,
		Personality: r.Personality,
		Scenario:    r.Scenario,
		Greeting:    r.Greeting,
		Interests:   r.Interests,
		Background:  r.Background,
		Height:      r.Height,
		Language:    r.Language,
		Status:      r.Status,
		Occupation:  r.Occupation,
		Skills:      r.Skills,
		Appearance:  r.Appearance,
		Figure:      r.Figure,
		Attributes:  r.Attributes,
		Species:     r.Species,
		Habits:      r.Habits,
		Likes:       r.Likes,
		Dislikes:    r.Dislikes,
		ImageURL:    r.ImageURL,
	}
}

// CharacterService orchestrates the character, version and shared stores.
type CharacterService struct {
	characters *store.CharacterStore
	versions   *store.VersionStore
	shared     *store.SharedStore
	log        *logger.Logger
}

func NewCharacterService(characters *store.CharacterStore, versions *store.VersionStore, shared *store.SharedStore, log *logger.Logger) *CharacterService {
	return &CharacterService{characters: characters, versions: versions, shared: shared, log: log}
}

// Create validates the payload and persists a new character.
func (s *CharacterService) Create(ctx context.Context, req CreateCharacterRequest) (*models.Character, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	character, err := s.characters.Create(ctx, req.toCharacter())
	if err != nil {
		return nil, err
	}
	s.log.Info("character created", "character_id", character.ID, "name", character.Name)
	return character, nil
}

// Update applies a partial update. Unrecognized patch keys are rejected
// before anything is written.
func (s *CharacterService) Update(ctx context.Context, id string, patch models.CharacterPatch) (*models.Character, error) {
	if len(patch) == 0 {
		return nil, apperrors.NewValidationError("update requires at least one field")
	}
	probe := models.Character{}
	for key, value := range patch {
		if key == "imageUrl" {
			continue
		}
		if _, ok := probe.Field(key); !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unrecognized field %q", key))
		}
		if len(value) > maxFieldLength {
			return nil, apperrors.NewValidationError(fmt.Sprintf("field %q exceeds the size limit", key))
		}
	}
	return s.characters.Update(ctx, id, patch)
}

// Get resolves a character id, shared clones included. Nil when absent.
func (s *CharacterService) Get(ctx context.Context, id string) (*models.Character, error) {
	return s.characters.GetByID(ctx, id)
}

// List returns the collection through the self-healing read.
func (s *CharacterService) List(ctx context.Context) ([]models.Character, error) {
	return s.characters.ListValid(ctx)
}

// Delete removes a character without cascading into versions, folders or
// relationships; those stay behind and are filtered lazily.
func (s *CharacterService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.characters.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("character deleted", "character_id", id)
	}
	return deleted, nil
}

// Versions lists a character's history in insertion order.
func (s *CharacterService) Versions(ctx context.Context, characterID string) ([]models.Version, error) {
	return s.versions.List(ctx, characterID)
}

// Version fetches a single snapshot, or nil.
func (s *CharacterService) Version(ctx context.Context, characterID, versionID string) (*models.Version, error) {
	return s.versions.Get(ctx, characterID, versionID)
}

// Restore applies an old snapshot as a regular update, so the restore
// itself is recorded and history grows rather than truncates.
func (s *CharacterService) Restore(ctx context.Context, characterID, versionID string) (*models.Character, error) {
	version, err := s.versions.Get(ctx, characterID, versionID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("version %s not found", versionID))
	}

	patch := models.CharacterPatch{}
	for i := range models.ProfileFields {
		f := &models.ProfileFields[i]
		patch[f.Key] = f.Get(&version.Data)
	}
	patch["imageUrl"] = version.Data.ImageURL
	return s.characters.Update(ctx, characterID, patch)
}

// Share clones a character into the public collection and returns the clone.
func (s *CharacterService) Share(ctx context.Context, characterID string) (*models.SharedCharacter, error) {
	character, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("character %s not found", characterID))
	}
	clone, err := s.shared.Share(ctx, character)
	if err != nil {
		return nil, err
	}
	s.log.Info("character shared", "character_id", characterID, "shared_id", clone.Character.ID)
	return clone, nil
}

// Shared resolves a shared-clone id directly.
func (s *CharacterService) Shared(ctx context.Context, id string) (*models.SharedCharacter, error) {
	return s.shared.GetByID(ctx, id)
}
