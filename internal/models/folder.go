package models

// Folder is a named grouping of character summaries. Membership is a
// denormalized cache of (id, name, imageUrl) copies, not a foreign key:
// stale entries survive until an explicit resync.
type Folder struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Characters []CharacterSummary `json:"characters"`
}

// Valid reports whether the folder passes the structural shape check applied
// when the folder collection is loaded or saved. Folders failing it are
// dropped rather than surfaced as errors.
func (f *Folder) Valid() bool {
	if f.ID == "" || f.Name == "" || f.Characters == nil {
		return false
	}
	for i := range f.Characters {
		if f.Characters[i].ID == "" || f.Characters[i].Name == "" {
			return false
		}
	}
	return true
}

// Contains reports whether the folder already lists the character.
func (f *Folder) Contains(characterID string) bool {
	for i := range f.Characters {
		if f.Characters[i].ID == characterID {
			return true
		}
	}
	return false
}
