package store

import (
	"context"
	"sync"

	"character-studio/backend/internal/models"
	"character-studio/backend/pkg/storage"

	"github.com/google/uuid"
)

// FolderStore owns the folder collection. Folder membership is a
// denormalized cache of character summaries; nothing here touches the
// character collection. Structurally corrupt folder objects are silently
// dropped whenever the collection passes through loadFolders/saveFolders.
type FolderStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
}

func NewFolderStore(adapter storage.Adapter) *FolderStore {
	return &FolderStore{adapter: adapter}
}

func (s *FolderStore) loadFolders(ctx context.Context) ([]models.Folder, error) {
	var folders []models.Folder
	if err := load(ctx, s.adapter, keyFolders, &folders); err != nil {
		return nil, err
	}
	kept := folders[:0]
	for i := range folders {
		if folders[i].Valid() {
			kept = append(kept, folders[i])
		}
	}
	return kept, nil
}

func (s *FolderStore) saveFolders(ctx context.Context, folders []models.Folder) error {
	kept := make([]models.Folder, 0, len(folders))
	for i := range folders {
		if folders[i].Valid() {
			kept = append(kept, folders[i])
		}
	}
	return save(ctx, s.adapter, keyFolders, kept)
}

// Create makes an empty folder.
func (s *FolderStore) Create(ctx context.Context, name string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return nil, err
	}
	folder := models.Folder{
		ID:         uuid.New().String(),
		Name:       name,
		Characters: []models.CharacterSummary{},
	}
	folders = append(folders, folder)
	if err := s.saveFolders(ctx, folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Rename changes a folder's name; false when the folder is absent.
func (s *FolderStore) Rename(ctx context.Context, id, newName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	for i := range folders {
		if folders[i].ID == id {
			folders[i].Name = newName
			return true, s.saveFolders(ctx, folders)
		}
	}
	return false, nil
}

// Delete removes a folder. Member characters are untouched.
func (s *FolderStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	kept := folders[:0]
	found := false
	for i := range folders {
		if folders[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, folders[i])
	}
	if !found {
		return false, nil
	}
	return true, s.saveFolders(ctx, kept)
}

// AddCharacter appends a summary to the folder, a no-op when the character
// id is already listed.
func (s *FolderStore) AddCharacter(ctx context.Context, folderID string, summary models.CharacterSummary) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	for i := range folders {
		if folders[i].ID != folderID {
			continue
		}
		if folders[i].Contains(summary.ID) {
			return true, nil
		}
		folders[i].Characters = append(folders[i].Characters, summary)
		return true, s.saveFolders(ctx, folders)
	}
	return false, nil
}

// RemoveCharacter drops a character id from the folder's list.
func (s *FolderStore) RemoveCharacter(ctx context.Context, folderID, characterID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	for i := range folders {
		if folders[i].ID != folderID {
			continue
		}
		members := folders[i].Characters
		kept := members[:0]
		found := false
		for j := range members {
			if members[j].ID == characterID {
				found = true
				continue
			}
			kept = append(kept, members[j])
		}
		if !found {
			return false, nil
		}
		folders[i].Characters = kept
		return true, s.saveFolders(ctx, folders)
	}
	return false, nil
}

// MoveCharacter removes the character from the source folder and appends its
// summary to the destination. Same source and destination means a move to
// the given index within the folder's list (drag reordering).
func (s *FolderStore) MoveCharacter(ctx context.Context, characterID, fromID, toID string, toIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}

	if fromID == toID {
		for i := range folders {
			if folders[i].ID != fromID {
				continue
			}
			members := folders[i].Characters
			srcIdx := -1
			for j := range members {
				if members[j].ID == characterID {
					srcIdx = j
					break
				}
			}
			if srcIdx < 0 {
				return false, nil
			}
			moved := members[srcIdx]
			members = append(members[:srcIdx], members[srcIdx+1:]...)
			if toIndex < 0 || toIndex > len(members) {
				toIndex = len(members)
			}
			members = append(members[:toIndex], append([]models.CharacterSummary{moved}, members[toIndex:]...)...)
			folders[i].Characters = members
			return true, s.saveFolders(ctx, folders)
		}
		return false, nil
	}

	var summary *models.CharacterSummary
	srcFound, dstFound := false, false
	for i := range folders {
		switch folders[i].ID {
		case fromID:
			srcFound = true
			members := folders[i].Characters
			kept := members[:0]
			for j := range members {
				if members[j].ID == characterID {
					m := members[j]
					summary = &m
					continue
				}
				kept = append(kept, members[j])
			}
			folders[i].Characters = kept
		case toID:
			dstFound = true
		}
	}
	if !srcFound || !dstFound || summary == nil {
		return false, nil
	}
	for i := range folders {
		if folders[i].ID == toID && !folders[i].Contains(characterID) {
			folders[i].Characters = append(folders[i].Characters, *summary)
		}
	}
	return true, s.saveFolders(ctx, folders)
}

// Reorder replaces the folder's member order with the given id order.
// Ids not currently in the folder are ignored; members missing from the
// order keep their relative position at the end.
func (s *FolderStore) Reorder(ctx context.Context, folderID string, order []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	for i := range folders {
		if folders[i].ID != folderID {
			continue
		}
		byID := make(map[string]models.CharacterSummary, len(folders[i].Characters))
		for _, m := range folders[i].Characters {
			byID[m.ID] = m
		}
		reordered := make([]models.CharacterSummary, 0, len(byID))
		for _, id := range order {
			if m, ok := byID[id]; ok {
				reordered = append(reordered, m)
				delete(byID, id)
			}
		}
		for _, m := range folders[i].Characters {
			if _, left := byID[m.ID]; left {
				reordered = append(reordered, m)
			}
		}
		folders[i].Characters = reordered
		return true, s.saveFolders(ctx, folders)
	}
	return false, nil
}

// ListAll returns every stored folder, empty ones included.
func (s *FolderStore) ListAll(ctx context.Context) ([]models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// ListVisible filters out empty folders for display. Empty folders stay in
// storage until explicitly deleted.
func (s *FolderStore) ListVisible(ctx context.Context) ([]models.Folder, error) {
	folders, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Folder, 0, len(folders))
	for i := range folders {
		if len(folders[i].Characters) > 0 {
			visible = append(visible, folders[i])
		}
	}
	return visible, nil
}

// Compact rewrites the collection without structurally corrupt folders,
// returning how many were dropped. The read path already filters them; this
// makes the repair durable.
func (s *FolderStore) Compact(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []models.Folder
	if err := load(ctx, s.adapter, keyFolders, &raw); err != nil {
		return 0, err
	}
	kept := make([]models.Folder, 0, len(raw))
	for i := range raw {
		if raw[i].Valid() {
			kept = append(kept, raw[i])
		}
	}
	dropped := len(raw) - len(kept)
	if dropped == 0 {
		return 0, nil
	}
	return dropped, s.saveFolders(ctx, kept)
}

// Resync refreshes the denormalized name/image copies in one folder from
// the canonical records. Members whose character no longer resolves are left
// as-is; stale display data beats losing the membership.
func (s *FolderStore) Resync(ctx context.Context, folderID string, lookup func(id string) *models.CharacterSummary) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.loadFolders(ctx)
	if err != nil {
		return false, err
	}
	for i := range folders {
		if folders[i].ID != folderID {
			continue
		}
		for j := range folders[i].Characters {
			if fresh := lookup(folders[i].Characters[j].ID); fresh != nil {
				folders[i].Characters[j] = *fresh
			}
		}
		return true, s.saveFolders(ctx, folders)
	}
	return false, nil
}
