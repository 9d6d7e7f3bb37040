package api

import (
	"context"

	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/joakimwinum/weatherforecast/log"
	"github.com/joakimwinum/weatherforecast/search"
	"github.com/morikuni/failure/v2"
)

// FindPlace searches the dataset selected by opts for term. No network access is made.
func FindPlace(opts Options, term string) (*Place, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	keys, err := gazetteer.SelectKeys(opts.Scope, opts.Language)
	if err != nil {
		return nil, err
	}
	records, err := gazetteer.LoadDataset(opts.Scope, opts.DataDir, keys)
	if err != nil {
		return nil, err
	}

	result, ok := search.NewEngine(nil).Resolve(term, records, keys.SearchFields(), opts.AllowFuzzy)
	if !ok {
		return nil, failure.New(ErrNotFound,
			failure.Message("No search result found."),
			failure.Context{"term": term, "scope": opts.Scope.String()},
		)
	}

	return &Place{
		Term:       term,
		Record:     result.Record,
		Candidates: result.Candidates,
	}, nil
}

// Lookup finds the place for term and fetches its forecast feeds
func Lookup(ctx context.Context, opts Options, term string) (*Result, error) {
	place, err := FindPlace(opts, term)
	if err != nil {
		return nil, err
	}
	return Forecast(ctx, opts, place)
}

// Forecast fetches the forecast and hourly feeds of place.
// The feeds are fetched one after the other, the hourly link being read from the first.
func Forecast(ctx context.Context, opts Options, place *Place) (*Result, error) {
	u := place.Record.XMLURL()
	if u == "" {
		return nil, failure.New(gazetteer.ErrDataLoad,
			failure.Message("Search result has no forecast link"),
			failure.Context{"term": place.Term, "scope": opts.Scope.String()},
		)
	}
	log.Debug("Place found", "term", place.Term, "url", u, "fuzzy", place.Fuzzy())

	fetcher := opts.fetcher()
	doc, err := fetchDocument(ctx, fetcher, u)
	if err != nil {
		return nil, err
	}

	hourlyURL, err := doc.HourlyURL()
	if err != nil {
		return nil, err
	}
	hourly, err := fetchDocument(ctx, fetcher, hourlyURL)
	if err != nil {
		return nil, err
	}

	return &Result{
		Place:     place,
		URL:       u,
		Document:  doc,
		HourlyURL: hourlyURL,
		Hourly:    hourly,
	}, nil
}

func fetchDocument(ctx context.Context, fetcher *forecast.Fetcher, u string) (forecast.Document, error) {
	body, err := fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	doc, err := forecast.Parse(body)
	if err != nil {
		return nil, failure.Wrap(err, failure.Context{"url": u})
	}
	return doc, nil
}
