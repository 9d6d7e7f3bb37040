package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/joakimwinum/weatherforecast/gazetteer"
)

// DefaultThreshold is the worst normalized distance still accepted as a match
const DefaultThreshold = 0.6

// Match is a ranked fuzzy candidate
type Match struct {
	// Index is the position of the record in the searched table
	Index  int
	Record gazetteer.Record
	// Distance is the normalized edit distance, 0 for identical and 1 for nothing in common
	Distance float64
}

// Ranker orders records by similarity to a search term, best first
type Ranker interface {
	Rank(term string, records []gazetteer.Record, fields []string) []Match
}

// LevenshteinRanker ranks records by normalized Levenshtein distance.
// Each field is compared as a whole and word by word, and the best
// score over all searchable fields is the score of the record.
type LevenshteinRanker struct {
	// Threshold drops candidates scoring worse than this. Zero means DefaultThreshold.
	Threshold float64
}

// Rank implements Ranker
func (r LevenshteinRanker) Rank(term string, records []gazetteer.Record, fields []string) []Match {
	threshold := r.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matches []Match
	for i, record := range records {
		best := 1.0
		for _, field := range fields {
			if d := fieldDistance(term, strings.ToLower(record.Get(field))); d < best {
				best = d
			}
		}
		if best <= threshold {
			matches = append(matches, Match{Index: i, Record: record, Distance: best})
		}
	}

	// Equal scores keep table order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	return matches
}

func fieldDistance(term, value string) float64 {
	if value == "" {
		return 1
	}

	best := normalizedDistance(term, value)
	words := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '-' || r == '/'
	})
	if len(words) > 1 {
		for _, w := range words {
			if d := normalizedDistance(term, w); d < best {
				best = d
			}
		}
	}
	return best
}

func normalizedDistance(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
