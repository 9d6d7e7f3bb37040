package forecast

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/joakimwinum/weatherforecast/log"
	"github.com/morikuni/failure/v2"
)

// DefaultTimeout bounds a single feed request
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves feed bodies over HTTP. Requests are never retried.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher whose requests are logged at debug level
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: log.Transport(http.DefaultTransport),
		},
		userAgent: userAgent,
	}
}

// NewFetcherWithClient creates a fetcher around an existing client.
// The client's own Timeout applies.
func NewFetcherWithClient(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch performs a GET against rawURL and returns the response body
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", failure.Translate(err, ErrFetch,
			failure.Message("Invalid forecast URL"),
			failure.Context{"url": rawURL},
		)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", failure.Translate(err, ErrFetch,
			failure.Message("Failed to fetch forecast: "+err.Error()),
			failure.Context{"url": rawURL},
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", failure.New(ErrFetch,
			failure.Message("Failed to fetch forecast: "+resp.Status),
			failure.Context{
				"url":    rawURL,
				"status": strconv.Itoa(resp.StatusCode),
			},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failure.Translate(err, ErrFetch,
			failure.Message("Failed to read forecast response"),
			failure.Context{"url": rawURL},
		)
	}

	log.Debug("Forecast fetched", "url", rawURL, "bytes", len(body))
	return string(body), nil
}
