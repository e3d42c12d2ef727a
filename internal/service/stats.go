package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"character-studio/backend/internal/store"
)

const topWordCount = 20

// Stats is the aggregate view over the whole collection, recomputed on each
// request; nothing here is stored.
type Stats struct {
	TotalCharacters int               `json:"totalCharacters"`
	Gender          map[string]int    `json:"gender"`
	Species         map[string]int    `json:"species"`
	Language        map[string]int    `json:"language"`
	Occupation      map[string]int    `json:"occupation"`
	AgeBuckets      map[string]int    `json:"ageBuckets"`
	TopWords        []WordCount       `json:"topWords"`
	Completeness    []CompletenessRow `json:"completeness"`
	Timeline        []TimelinePoint   `json:"timeline"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type CompletenessRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

type TimelinePoint struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
	Edited  int    `json:"edited"`
}

// StatsService computes collection statistics.
type StatsService struct {
	characters *store.CharacterStore
}

func NewStatsService(characters *store.CharacterStore) *StatsService {
	return &StatsService{characters: characters}
}

// Compute runs all reductions over the valid collection.
func (s *StatsService) Compute(ctx context.Context) (*Stats, error) {
	characters, err := s.characters.ListValid(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalCharacters: len(characters),
		Gender:          map[string]int{},
		Species:         map[string]int{},
		Language:        map[string]int{},
		Occupation:      map[string]int{},
		AgeBuckets:      map[string]int{},
		Completeness:    make([]CompletenessRow, 0, len(characters)),
	}

	words := map[string]int{}
	created := map[string]int{}
	edited := map[string]int{}

	for i := range characters {
		c := &characters[i]
		countInto(stats.Gender, c.Gender)
		countInto(stats.Species, c.Species)
		countInto(stats.Language, c.Language)
		countInto(stats.Occupation, c.Occupation)
		stats.AgeBuckets[ageBucket(c.Age)]++

		for _, text := range []string{c.Personality, c.Likes, c.Dislikes, c.Skills} {
			tallyWords(words, text)
		}

		stats.Completeness = append(stats.Completeness, CompletenessRow{
			ID:      c.ID,
			Name:    c.Name,
			Percent: c.Completeness(),
		})

		createdDay := c.CreatedAt.Format("2006-01-02")
		created[createdDay]++
		if editedDay := c.UpdatedAt.Format("2006-01-02"); editedDay != createdDay {
			edited[editedDay]++
		}
	}

	stats.TopWords = topWords(words, topWordCount)
	stats.Timeline = buildTimeline(created, edited)
	return stats, nil
}

func countInto(m map[string]int, value string) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		value = "unspecified"
	}
	m[value]++
}

// ageBucket groups the free-text age field by its leading number.
func ageBucket(age string) string {
	digits := strings.TrimLeftFunc(strings.TrimSpace(age), func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		return "unknown"
	}
	switch {
	case n < 13:
		return "child"
	case n < 18:
		return "teen"
	case n < 30:
		return "young adult"
	case n < 50:
		return "adult"
	default:
		return "mature"
	}
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "but": true, "not": true, "her": true,
	"his": true, "she": true, "has": true, "have": true, "was": true,
	"can": true, "very": true, "also": true, "when": true, "they": true,
	"them": true, "their": true, "from": true, "about": true, "like": true,
	"likes": true, "into": true, "out": true, "all": true, "any": true,
}

func tallyWords(counts map[string]int, text string) {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if len(token) < 3 || stopwords[token] {
			continue
		}
		counts[token]++
	}
}

func topWords(counts map[string]int, n int) []WordCount {
	list := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		list = append(list, WordCount{Word: word, Count: count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Word < list[j].Word
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

func buildTimeline(created, edited map[string]int) []TimelinePoint {
	days := map[string]bool{}
	for d := range created {
		days[d] = true
	}
	for d := range edited {
		days[d] = true
	}
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	timeline := make([]TimelinePoint, 0, len(sorted))
	for _, d := range sorted {
		timeline = append(timeline, TimelinePoint{
			Date:    d,
			Created: created[d],
			Edited:  edited[d],
		})
	}
	return timeline
}
