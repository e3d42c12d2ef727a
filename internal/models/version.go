package models

import "time"

// Version is an immutable snapshot of a character's state taken immediately
// before an update was applied. Versions are append-only: they are never
// rewritten, and restoring one is just another update that grows the list.
type Version struct {
	ID        string    `json:"id"`
	Data      Character `json:"data"`
	Changes   []string  `json:"changes"`
	Timestamp time.Time `json:"timestamp"`
}
