package export

import (
	"strings"
	"testing"

	"character-studio/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCharacter() *models.Character {
	return &models.Character{
		ID:          "c1",
		Name:        "Aria",
		Gender:      "female",
		Age:         "25",
		Species:     "human",
		Description: "A wandering bard.",
		Personality: "Cheerful and curious",
		Interests:   "lute, travel",
		Greeting:    `She waves and says "hello there"`,
		ImageURL:    "data:image/png;base64,xyz",
	}
}

func TestPlainTextIncludesEmptyFields(t *testing.T) {
	out := PlainText(sampleCharacter())

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, len(models.ProfileFields))
	assert.Equal(t, "Name: Aria", lines[0])
	assert.Contains(t, out, "Interests: lute, travel\n")
	// Empty fields still render with an empty value.
	assert.Contains(t, out, "Occupation: \n")
}

func TestBracketFormat(t *testing.T) {
	out := Bracket(sampleCharacter())

	assert.True(t, strings.HasPrefix(out, `{Character("Aria")`))
	assert.True(t, strings.HasSuffix(out, "}"))
	assert.Contains(t, out, `Age("25")`)
	assert.Contains(t, out, `Gender("female")`)
	// Interests are outside the bracket schema.
	assert.NotContains(t, out, "Interests")
	assert.NotContains(t, out, "lute")
	// Embedded quotes are escaped.
	assert.Contains(t, out, `Greeting("She waves and says \"hello there\"")`)

	// The field order is fixed, not alphabetical: Species comes before
	// Description, Background before Scenario.
	assert.Less(t, strings.Index(out, "Species("), strings.Index(out, "Description("))
	assert.Less(t, strings.Index(out, "Background("), strings.Index(out, "Scenario("))
}

func TestBracketRoundTrip(t *testing.T) {
	original := sampleCharacter()
	original.Background = "Raised in the northern hills.\nLeft home at sixteen."

	parsed, err := ParseBracket(Bracket(original))
	require.NoError(t, err)

	for i := range models.ProfileFields {
		f := &models.ProfileFields[i]
		if f.Bracket == "" {
			continue
		}
		assert.Equal(t, f.Get(original), f.Get(parsed), "field %s", f.Key)
	}
	// Interests are lossy by design of the format.
	assert.Empty(t, parsed.Interests)
}

func TestParseBracketSkipsUnknownCalls(t *testing.T) {
	parsed, err := ParseBracket(`{Character("Bren")
Mystery("ignored")
Age("40")}`)
	require.NoError(t, err)
	assert.Equal(t, "Bren", parsed.Name)
	assert.Equal(t, "40", parsed.Age)
}

func TestParseBracketErrors(t *testing.T) {
	_, err := ParseBracket(`{Character("unterminated`)
	assert.Error(t, err)

	_, err = ParseBracket(`{Nothing("recognized")}`)
	assert.Error(t, err)
}

func TestJSONBundle(t *testing.T) {
	bundle := JSONBundle(sampleCharacter())

	assert.Equal(t, "Aria", bundle.Name)
	assert.Equal(t, "A wandering bard.", bundle.Description)
	assert.Equal(t, `She waves and says "hello there"`, bundle.FirstMessage)
	assert.Equal(t, "data:image/png;base64,xyz", bundle.AvatarURI)
}
