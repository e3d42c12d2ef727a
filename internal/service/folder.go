package service

import (
	"context"
	"strings"

	"character-studio/backend/internal/models"
	"character-studio/backend/internal/store"
	apperrors "character-studio/backend/pkg/errors"
)

// FolderService fronts the folder store and wires the resync operation to
// the canonical character records.
type FolderService struct {
	folders    *store.FolderStore
	characters *store.CharacterStore
}

func NewFolderService(folders *store.FolderStore, characters *store.CharacterStore) *FolderService {
	return &FolderService{folders: folders, characters: characters}
}

// Create makes a new empty folder.
func (s *FolderService) Create(ctx context.Context, name string) (*models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("folder name is required")
	}
	return s.folders.Create(ctx, name)
}

// Rename changes a folder's display name.
func (s *FolderService) Rename(ctx context.Context, id, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, apperrors.NewValidationError("folder name is required")
	}
	return s.folders.Rename(ctx, id, name)
}

// Delete removes the folder only; member characters are untouched.
func (s *FolderService) Delete(ctx context.Context, id string) (bool, error) {
	return s.folders.Delete(ctx, id)
}

// List returns folders for display; pass all to include empty ones.
func (s *FolderService) List(ctx context.Context, all bool) ([]models.Folder, error) {
	if all {
		return s.folders.ListAll(ctx)
	}
	return s.folders.ListVisible(ctx)
}

// AddCharacter copies the character's summary into the folder.
func (s *FolderService) AddCharacter(ctx context.Context, folderID, characterID string) (bool, error) {
	character, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		return false, err
	}
	if character == nil {
		return false, apperrors.NewNotFoundError(apperrors.CodeNotFound, "character not found")
	}
	return s.folders.AddCharacter(ctx, folderID, character.Summary())
}

// RemoveCharacter drops the character from the folder.
func (s *FolderService) RemoveCharacter(ctx context.Context, folderID, characterID string) (bool, error) {
	return s.folders.RemoveCharacter(ctx, folderID, characterID)
}

// Move relocates a character between folders, or reorders within one.
func (s *FolderService) Move(ctx context.Context, characterID, fromID, toID string, toIndex int) (bool, error) {
	if characterID == "" || fromID == "" || toID == "" {
		return false, apperrors.NewValidationError("move requires character, source and destination ids")
	}
	return s.folders.MoveCharacter(ctx, characterID, fromID, toID, toIndex)
}

// Reorder applies a drag-reorder id sequence to the folder.
func (s *FolderService) Reorder(ctx context.Context, folderID string, order []string) (bool, error) {
	return s.folders.Reorder(ctx, folderID, order)
}

// Resync refreshes the folder's denormalized summaries from the canonical
// character records.
func (s *FolderService) Resync(ctx context.Context, folderID string) (bool, error) {
	return s.folders.Resync(ctx, folderID, func(id string) *models.CharacterSummary {
		character, err := s.characters.GetByID(ctx, id)
		if err != nil || character == nil {
			return nil
		}
		summary := character.Summary()
		return &summary
	})
}
