package export

import (
	"fmt"
	"strings"
	"unicode"

	"character-studio/backend/internal/models"
)

// ParseBracket reads a bracket-format document back into a character,
// mapping each recognized call name onto its profile field. Populated
// schema fields round-trip verbatim; calls with unknown names are skipped.
func ParseBracket(text string) (*models.Character, error) {
	byBracket := make(map[string]string, len(models.ProfileFields))
	for i := range models.ProfileFields {
		if models.ProfileFields[i].Bracket != "" {
			byBracket[models.ProfileFields[i].Bracket] = models.ProfileFields[i].Key
		}
	}

	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")

	var character models.Character
	seen := 0
	pos := 0
	for pos < len(body) {
		// Skip separators between calls.
		for pos < len(body) && (unicode.IsSpace(rune(body[pos])) || body[pos] == ',') {
			pos++
		}
		if pos >= len(body) {
			break
		}

		open := strings.Index(body[pos:], `("`)
		if open < 0 {
			break
		}
		name := strings.TrimSpace(body[pos : pos+open])
		valueStart := pos + open + 2

		// The value runs to the next `")` that closes the call: the quote
		// followed by a paren and then a line break, another call, or the end.
		end := -1
		search := valueStart
		for {
			i := strings.Index(body[search:], `")`)
			if i < 0 {
				break
			}
			candidate := search + i
			rest := strings.TrimLeft(body[candidate+2:], " \t\r")
			if rest == "" || strings.HasPrefix(rest, "\n") || rest[0] == ',' || looksLikeCall(rest) {
				end = candidate
				break
			}
			search = candidate + 2
		}
		if end < 0 {
			return nil, fmt.Errorf("unterminated call %s at offset %d", name, pos)
		}

		value := strings.ReplaceAll(body[valueStart:end], `\"`, `"`)
		if key, ok := byBracket[name]; ok {
			character.SetField(key, value)
			seen++
		}
		pos = end + 2
	}

	if seen == 0 {
		return nil, fmt.Errorf("no recognized fields in bracket document")
	}
	return &character, nil
}

// looksLikeCall reports whether the text begins with an identifier followed
// by an opening quote call, e.g. `Gender("`.
func looksLikeCall(text string) bool {
	i := 0
	for i < len(text) && (unicode.IsLetter(rune(text[i])) || unicode.IsDigit(rune(text[i]))) {
		i++
	}
	if i == 0 {
		return false
	}
	return strings.HasPrefix(text[i:], `("`)
}
