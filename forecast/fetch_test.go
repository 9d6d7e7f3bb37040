package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/morikuni/failure/v2"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<weatherdata/>")
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "weatherforecast-test")
	body, err := f.Fetch(context.Background(), srv.URL+"/forecast.xml")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != "<weatherdata/>" {
		t.Errorf("Fetch() = %q", body)
	}
	if gotUA != "weatherforecast-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := map[string]string{
		"not found":          srv.URL + "/forecast.xml",
		"connection refused": closedURL,
		"invalid url":        "http://[::1]:namedport",
	}

	f := NewFetcherWithClient(srv.Client(), "")
	for name, u := range tests {
		t.Run(name, func(t *testing.T) {
			body, err := f.Fetch(context.Background(), u)
			if !failure.Is(err, ErrFetch) {
				t.Errorf("Fetch() error = %v, want %s", err, ErrFetch)
			}
			if body != "" {
				t.Errorf("Fetch() body = %q, want empty", body)
			}
		})
	}
}

func TestFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<weatherdata/>")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFetcher(0, "").Fetch(ctx, srv.URL); !failure.Is(err, ErrFetch) {
		t.Errorf("Fetch() error = %v, want %s", err, ErrFetch)
	}
}
