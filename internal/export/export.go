// Package export renders character records into the downloadable
// interchange formats. Everything here is a pure transformation; no state,
// no storage.
package export

import (
	"fmt"
	"strings"

	"character-studio/backend/internal/models"
)

// PlainText renders one "Label: value" line per recognized field, in the
// fixed field order. Empty fields still render, with an empty value, so the
// output shape is identical for every character.
func PlainText(c *models.Character) string {
	var b strings.Builder
	for i := range models.ProfileFields {
		f := &models.ProfileFields[i]
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Get(c))
	}
	return b.String()
}

// Bracket renders the bracketed key-call format consumed by the external
// platform's import mechanism:
//
//	{Character("Aria")
//	Gender("female")
//	...}
//
// Field order is fixed and non-alphabetical. Fields outside the bracket
// schema (interests) are not emitted and are lost on round-trip.
func Bracket(c *models.Character) string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for i := range models.ProfileFields {
		f := &models.ProfileFields[i]
		if f.Bracket == "" {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		value := strings.ReplaceAll(f.Get(c), `"`, `\"`)
		fmt.Fprintf(&b, "%s(\"%s\")", f.Bracket, value)
	}
	b.WriteString("}")
	return b.String()
}

// Bundle is the minimal JSON projection used by the platform-specific
// bundle export.
type Bundle struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Personality  string `json:"personality"`
	Scenario     string `json:"scenario"`
	FirstMessage string `json:"first_message"`
	AvatarURI    string `json:"avatar_uri"`
}

// JSONBundle projects a character into the bundle shape.
func JSONBundle(c *models.Character) Bundle {
	return Bundle{
		Name:         c.Name,
		Description:  c.Description,
		Personality:  c.Personality,
		Scenario:     c.Scenario,
		FirstMessage: c.Greeting,
		AvatarURI:    c.ImageURL,
	}
}
