package models

import "time"

// SharedCharacter is a publicly-resolvable read-only clone of a character.
// It carries its own id; OriginalID points back at the source record but is
// never used for lookups, so deleting the original leaves the clone intact.
type SharedCharacter struct {
	Character
	IsShared   bool      `json:"isShared"`
	OriginalID string    `json:"originalId"`
	SharedAt   time.Time `json:"sharedAt"`
}
