package models

import (
	"strings"
	"time"
)

// Ratings holds the aggregate like/dislike counters stored on a character.
type Ratings struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Character is a user-authored persona record. All profile fields are free
// text; the set of recognized fields is fixed by ProfileFields below.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	Age         string   `json:"age"`
	Description string   `json:"description"`
	Personality string   `json:"personality"`
	Scenario    string   `json:"scenario"`
	Greeting    string   `json:"greeting"`
	Interests   string   `json:"interests"`
	Background  string   `json:"background"`
	Height      string   `json:"height"`
	Language    string   `json:"language"`
	Status      string   `json:"status"`
	Occupation  string   `json:"occupation"`
	Skills      string   `json:"skills"`
	Appearance  string   `json:"appearance"`
	Figure      string   `json:"figure"`
	Attributes  string   `json:"attributes"`
	Species     string   `json:"species"`
	Habits      string   `json:"habits"`
	Likes       string   `json:"likes"`
	Dislikes    string   `json:"dislikes"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Ratings     *Ratings `json:"ratings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CharacterSummary is the denormalized projection kept in folder listings.
// It is a copy, not a reference: renames and image changes on the canonical
// record do not propagate until a folder resync.
type CharacterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Summary returns the folder-listing projection of the character.
func (c *Character) Summary() CharacterSummary {
	return CharacterSummary{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}

// FieldDef describes one recognized profile field. Bracket is the call name
// used by the bracketed export format; fields with an empty Bracket are not
// part of that schema and do not survive a bracket round-trip.
type FieldDef struct {
	Key     string
	Label   string
	Bracket string
	Get     func(*Character) string
	Set     func(*Character, string)
}

// ProfileFields lists every recognized profile field in the fixed order used
// by the export formats. The order is part of the interchange contract with
// the external import mechanism and must not be alphabetized.
var ProfileFields = []FieldDef{
	{"name", "Name", "Character", func(c *Character) string { return c.Name }, func(c *Character, v string) { c.Name = v }},
	{"gender", "Gender", "Gender", func(c *Character) string { return c.Gender }, func(c *Character, v string) { c.Gender = v }},
	{"age", "Age", "Age", func(c *Character) string { return c.Age }, func(c *Character, v string) { c.Age = v }},
	{"species", "Species", "Species", func(c *Character) string { return c.Species }, func(c *Character, v string) { c.Species = v }},
	{"description", "Description", "Description", func(c *Character) string { return c.Description }, func(c *Character, v string) { c.Description = v }},
	{"personality", "Personality", "Personality", func(c *Character) string { return c.Personality }, func(c *Character, v string) { c.Personality = v }},
	{"appearance", "Appearance", "Appearance", func(c *Character) string { return c.Appearance }, func(c *Character, v string) { c.Appearance = v }},
	{"height", "Height", "Height", func(c *Character) string { return c.Height }, func(c *Character, v string) { c.Height = v }},
	{"figure", "Figure", "Figure", func(c *Character) string { return c.Figure }, func(c *Character, v string) { c.Figure = v }},
	{"occupation", "Occupation", "Occupation", func(c *Character) string { return c.Occupation }, func(c *Character, v string) { c.Occupation = v }},
	{"skills", "Skills", "Skills", func(c *Character) string { return c.Skills }, func(c *Character, v string) { c.Skills = v }},
	{"attributes", "Attributes", "Attributes", func(c *Character) string { return c.Attributes }, func(c *Character, v string) { c.Attributes = v }},
	{"habits", "Habits", "Habits", func(c *Character) string { return c.Habits }, func(c *Character, v string) { c.Habits = v }},
	{"likes", "Likes", "Likes", func(c *Character) string { return c.Likes }, func(c *Character, v string) { c.Likes = v }},
	{"dislikes", "Dislikes", "Dislikes", func(c *Character) string { return c.Dislikes }, func(c *Character, v string) { c.Dislikes = v }},
	{"interests", "Interests", "", func(c *Character) string { return c.Interests }, func(c *Character, v string) { c.Interests = v }},
	{"background", "Background", "Background", func(c *Character) string { return c.Background }, func(c *Character, v string) { c.Background = v }},
	{"scenario", "Scenario", "Scenario", func(c *Character) string { return c.Scenario }, func(c *Character, v string) { c.Scenario = v }},
	{"greeting", "Greeting", "Greeting", func(c *Character) string { return c.Greeting }, func(c *Character, v string) { c.Greeting = v }},
	{"status", "Status", "Status", func(c *Character) string { return c.Status }, func(c *Character, v string) { c.Status = v }},
	{"language", "Language", "Language", func(c *Character) string { return c.Language }, func(c *Character, v string) { c.Language = v }},
}

// Field returns the value of a recognized profile field by key.
func (c *Character) Field(key string) (string, bool) {
	for i := range ProfileFields {
		if ProfileFields[i].Key == key {
			return ProfileFields[i].Get(c), true
		}
	}
	return "", false
}

// SetField assigns a recognized profile field by key.
func (c *Character) SetField(key, value string) bool {
	for i := range ProfileFields {
		if ProfileFields[i].Key == key {
			ProfileFields[i].Set(c, value)
			return true
		}
	}
	return false
}

// ChangedFields returns the keys of profile fields (plus imageUrl) whose
// values differ between the two records, in ProfileFields order.
func ChangedFields(before, after *Character) []string {
	var changed []string
	for i := range ProfileFields {
		if ProfileFields[i].Get(before) != ProfileFields[i].Get(after) {
			changed = append(changed, ProfileFields[i].Key)
		}
	}
	if before.ImageURL != after.ImageURL {
		changed = append(changed, "imageUrl")
	}
	return changed
}

// Completeness reports the fraction of recognized profile fields that hold a
// non-blank value, as a 0-100 percentage.
func (c *Character) Completeness() int {
	filled := 0
	for i := range ProfileFields {
		if strings.TrimSpace(ProfileFields[i].Get(c)) != "" {
			filled++
		}
	}
	return filled * 100 / len(ProfileFields)
}

// SameIdentity reports whether two characters collide on the creation
// uniqueness triple: case-insensitive name plus exact gender and age.
func SameIdentity(a, b *Character) bool {
	return strings.EqualFold(a.Name, b.Name) && a.Gender == b.Gender && a.Age == b.Age
}

// CharacterPatch carries a partial update; only present keys are applied.
// The imageUrl key is accepted alongside the recognized profile fields.
type CharacterPatch map[string]string

// Apply merges the patch over the character.
func (p CharacterPatch) Apply(c *Character) {
	for key, val := range p {
		if key == "imageUrl" {
			c.ImageURL = val
			continue
		}
		c.SetField(key, val)
	}
}
