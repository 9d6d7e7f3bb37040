// Package search resolves a search term to a single gazetteer record.
//
// Resolution runs in two passes. The exact pass walks the table in order
// and returns the first record having a searchable field equal to the term,
// ignoring case. Only when that fails, and fuzzy matching is allowed, the
// records are ranked by a Ranker and the best of the top candidates wins.
package search

import (
	"strings"

	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/joakimwinum/weatherforecast/log"
	"github.com/samber/lo"
)

// MaxCandidates is the number of fuzzy candidates kept after ranking
const MaxCandidates = 3

// Engine performs exact-then-fuzzy lookups
type Engine struct {
	ranker Ranker
}

// NewEngine creates an engine using the given ranker.
// A nil ranker falls back to LevenshteinRanker.
func NewEngine(ranker Ranker) *Engine {
	if ranker == nil {
		ranker = LevenshteinRanker{}
	}
	return &Engine{ranker: ranker}
}

// Result is the outcome of a successful search
type Result struct {
	Record gazetteer.Record
	// Candidates are the ranked fuzzy matches, Record being the first.
	// Empty when the exact pass matched.
	Candidates []gazetteer.Record
}

// Fuzzy reports whether the record came from the fuzzy pass
func (r Result) Fuzzy() bool {
	return len(r.Candidates) > 0
}

// Search returns the best record for term, and false if nothing matched
func (e *Engine) Search(term string, records []gazetteer.Record, fields []string, allowFuzzy bool) (gazetteer.Record, bool) {
	result, ok := e.Resolve(term, records, fields, allowFuzzy)
	return result.Record, ok
}

// Resolve is Search keeping the fuzzy candidates the record was picked from
func (e *Engine) Resolve(term string, records []gazetteer.Record, fields []string, allowFuzzy bool) (Result, bool) {
	if record, ok := Exact(term, records, fields); ok {
		log.Debug("Exact match", "term", term)
		return Result{Record: record}, true
	}

	if !allowFuzzy {
		log.Debug("No exact match", "term", term)
		return Result{}, false
	}

	candidates := e.Candidates(term, records, fields)
	if len(candidates) == 0 {
		log.Debug("No fuzzy match", "term", term)
		return Result{}, false
	}

	log.Debug("Fuzzy match", "term", term, "candidates", len(candidates))
	return Result{Record: candidates[0], Candidates: candidates}, true
}

// Candidates returns at most MaxCandidates fuzzy matches, best first
func (e *Engine) Candidates(term string, records []gazetteer.Record, fields []string) []gazetteer.Record {
	ranked := e.ranker.Rank(term, records, fields)
	return lo.Map(lo.Subset(ranked, 0, MaxCandidates), func(m Match, _ int) gazetteer.Record {
		return m.Record
	})
}

// Exact returns the first record, in table order, with a field equal to term
// ignoring case. Fields are tried in the given order.
func Exact(term string, records []gazetteer.Record, fields []string) (gazetteer.Record, bool) {
	needle := strings.ToLower(term)
	for _, record := range records {
		for _, field := range fields {
			if strings.ToLower(record.Get(field)) == needle {
				return record, true
			}
		}
	}
	return nil, false
}
