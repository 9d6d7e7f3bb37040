package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/morikuni/failure/v2"
)

const upstreamHourlyURL = "http://www.yr.no/place/Norway/Oslo/Oslo/Oslo/forecast_hour_by_hour.xml"

// feedServer serves the forecast fixtures with the hourly link rewritten to point at itself
func feedServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	forecastXML, err := os.ReadFile(filepath.Join("testdata", "forecast.xml"))
	if err != nil {
		t.Fatal(err)
	}
	hourlyXML, err := os.ReadFile(filepath.Join("testdata", "forecast_hour_by_hour.xml"))
	if err != nil {
		t.Fatal(err)
	}

	var requests atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/oslo/forecast.xml":
			w.Write([]byte(strings.ReplaceAll(string(forecastXML), upstreamHourlyURL, srv.URL+"/oslo/forecast_hour_by_hour.xml")))
		case "/oslo/forecast_hour_by_hour.xml":
			w.Write(hourlyXML)
		case "/broken/forecast.xml":
			w.Write([]byte("<weatherdata><location>"))
		case "/nolinks/forecast.xml":
			w.Write([]byte("<weatherdata><location><name>Nowhere</name></location></weatherdata>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

// dataDir writes a norway dataset whose feed links point at srv
func dataDir(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()
	rows := []string{
		"Stadnamn,Nynorsk,Bokmål,Engelsk",
		"Oslo,,," + srv.URL + "/oslo/forecast.xml",
		"Bergen,,," + srv.URL + "/bergen/forecast.xml",
		"Brokstad,,," + srv.URL + "/broken/forecast.xml",
		"Linkløs,,," + srv.URL + "/nolinks/forecast.xml",
		"Tomrom,,,",
	}
	if err := os.WriteFile(filepath.Join(dir, "noreg.csv"), []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testOptions(t *testing.T, srv *httptest.Server) Options {
	return Options{
		Scope:      gazetteer.DatasetNorway,
		Language:   gazetteer.LanguageEnglish,
		AllowFuzzy: true,
		DataDir:    dataDir(t, srv),
		Timeout:    5 * time.Second,
		HTTPClient: srv.Client(),
	}
}

func TestLookup(t *testing.T) {
	srv, requests := feedServer(t)
	opts := testOptions(t, srv)

	result, err := Lookup(context.Background(), opts, "OSLO")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if result.URL != srv.URL+"/oslo/forecast.xml" {
		t.Errorf("URL = %q", result.URL)
	}
	if result.HourlyURL != srv.URL+"/oslo/forecast_hour_by_hour.xml" {
		t.Errorf("HourlyURL = %q", result.HourlyURL)
	}
	if result.Place.Fuzzy() {
		t.Error("exact match reported as fuzzy")
	}

	name, err := result.Document.String("location", "name")
	if err != nil || name != "Oslo" {
		t.Errorf("location.name = %q, %v", name, err)
	}
	slots, err := result.Hourly.List("forecast", "tabular", "time")
	if err != nil || len(slots) != 3 {
		t.Errorf("hourly slots = %d, %v, want 3", len(slots), err)
	}

	if got := requests.Load(); got != 2 {
		t.Errorf("made %d requests, want 2", got)
	}
}

func TestLookupFuzzy(t *testing.T) {
	srv, _ := feedServer(t)

	result, err := Lookup(context.Background(), testOptions(t, srv), "osl")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !result.Place.Fuzzy() {
		t.Error("fuzzy match not reported as fuzzy")
	}
	if got := result.Place.Record.Get(gazetteer.FieldState); got != "Oslo" {
		t.Errorf("matched %q, want Oslo", got)
	}
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name         string
		term         string
		noFuzzy      bool
		wantCode     any
		wantRequests int32
	}{
		{name: "no match", term: "xyzzyq", wantCode: ErrNotFound, wantRequests: 0},
		{name: "no exact match with fuzzy disabled", term: "osl", noFuzzy: true, wantCode: ErrNotFound, wantRequests: 0},
		{name: "row without feed link", term: "tomrom", wantCode: gazetteer.ErrDataLoad, wantRequests: 0},
		{name: "feed not found", term: "bergen", wantCode: forecast.ErrFetch, wantRequests: 1},
		{name: "malformed feed", term: "brokstad", wantCode: forecast.ErrParse, wantRequests: 1},
		{name: "feed without hourly link", term: "linkløs", wantCode: forecast.ErrMissingField, wantRequests: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := feedServer(t)
			opts := testOptions(t, srv)
			opts.AllowFuzzy = !tt.noFuzzy

			_, err := Lookup(context.Background(), opts, tt.term)
			if !failure.Is(err, tt.wantCode) {
				t.Fatalf("Lookup(%q) error = %v, want %s", tt.term, err, tt.wantCode)
			}
			if got := requests.Load(); got != tt.wantRequests {
				t.Errorf("made %d requests, want %d", got, tt.wantRequests)
			}
		})
	}
}

func TestLookupNotFoundMessage(t *testing.T) {
	srv, _ := feedServer(t)

	_, err := Lookup(context.Background(), testOptions(t, srv), "xyzzyq")
	if diff := cmp.Diff("No search result found.", failure.MessageOf(err).String()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPlaceBundled(t *testing.T) {
	tests := []struct {
		name     string
		scope    gazetteer.Dataset
		language gazetteer.Language
		term     string
		wantURL  string
	}{
		{
			name:     "norway english",
			scope:    gazetteer.DatasetNorway,
			language: gazetteer.LanguageEnglish,
			term:     "oslo",
			wantURL:  "http://www.yr.no/place/Norway/Oslo/Oslo/Oslo/forecast.xml",
		},
		{
			name:     "norway nynorsk",
			scope:    gazetteer.DatasetNorway,
			language: gazetteer.LanguageNynorsk,
			term:     "Bergen",
			wantURL:  "http://www.yr.no/stad/Noreg/Vestland/Bergen/Bergen/varsel.xml",
		},
		{
			name:     "postal code",
			scope:    gazetteer.DatasetNorwayZip,
			language: gazetteer.LanguageBokmaal,
			term:     "5003",
			wantURL:  "http://www.yr.no/sted/Norge/postnummer/5003/varsel.xml",
		},
		{
			name:     "world by country",
			scope:    gazetteer.DatasetWorld,
			language: gazetteer.LanguageEnglish,
			term:     "germany",
			wantURL:  "http://www.yr.no/place/Germany/Berlin/Berlin/forecast.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Scope: tt.scope, Language: tt.language, AllowFuzzy: true}
			place, err := FindPlace(opts, tt.term)
			if err != nil {
				t.Fatalf("FindPlace(%q) error = %v", tt.term, err)
			}
			if got := place.Record.XMLURL(); got != tt.wantURL {
				t.Errorf("FindPlace(%q) url = %q, want %q", tt.term, got, tt.wantURL)
			}
		})
	}
}

func TestLookupCustomClientUserAgent(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Lookup(context.Background(), testOptions(t, srv), "oslo")
	if !failure.Is(err, forecast.ErrFetch) {
		t.Fatalf("Lookup() error = %v, want %s", err, forecast.ErrFetch)
	}
	if got, _ := gotUA.Load().(string); got != UserAgent() {
		t.Errorf("User-Agent = %q, want %q", got, UserAgent())
	}
}
