package api

import (
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/joakimwinum/weatherforecast/gazetteer"
)

// Place is a gazetteer record selected by a search term
type Place struct {
	Term   string
	Record gazetteer.Record
	// Candidates are the ranked fuzzy matches. Empty for exact matches.
	Candidates []gazetteer.Record
}

// Fuzzy reports whether the place was found by the fuzzy pass
func (p *Place) Fuzzy() bool {
	return len(p.Candidates) > 0
}

// Result holds a place together with both of its forecast feeds
type Result struct {
	Place *Place

	URL      string
	Document forecast.Document

	HourlyURL string
	Hourly    forecast.Document
}
