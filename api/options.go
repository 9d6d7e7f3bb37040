package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/morikuni/failure/v2"
)

// Environment variables read by DefaultOptions
const (
	DataDirEnv = "WEATHERFORECAST_DATA_DIR"
	TimeoutEnv = "WEATHERFORECAST_TIMEOUT"
)

// Options configures a lookup. It is passed by value and never changed by the lookup.
type Options struct {
	// Scope is the dataset searched
	Scope gazetteer.Dataset `flag:"scope" validate:"oneof=norway zip world"`
	// Language selects the name and feed link columns
	Language gazetteer.Language `flag:"language" validate:"oneof=english bokmaal nynorsk"`
	// AllowFuzzy enables the fuzzy pass when no exact match exists
	AllowFuzzy bool `flag:"fuzzy"`
	// DataDir holds dataset files replacing the bundled ones. Empty means bundled.
	DataDir string `flag:"data-dir" validate:"omitempty,dir"`
	// Timeout bounds each feed request. Zero means forecast.DefaultTimeout.
	Timeout time.Duration `flag:"timeout" validate:"gte=0"`
	// HTTPClient replaces the default logging client. Timeout is not applied to it,
	// the client's own Timeout is used instead.
	HTTPClient *http.Client `flag:"-" validate:"-"`
}

// DefaultOptions returns the options used when nothing is specified.
// DataDir and Timeout are read from the environment when set.
func DefaultOptions() Options {
	opts := Options{
		Scope:      gazetteer.DatasetNorway,
		Language:   gazetteer.LanguageEnglish,
		AllowFuzzy: true,
		DataDir:    os.Getenv(DataDirEnv),
		Timeout:    forecast.DefaultTimeout,
	}
	if v := os.Getenv(TimeoutEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			opts.Timeout = d
		}
	}
	return opts
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})
	return v
}

// Validate checks every option against its accepted values
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return failure.New(ErrInvalidOptions,
			failure.Message(fmt.Sprintf("Invalid value for %s: %v", fe.Field(), fe.Value())),
			failure.Context{"option": fe.Field(), "rule": fe.Tag()},
		)
	}
	return failure.Translate(err, ErrInvalidOptions, failure.Message("Invalid options"))
}

func (o Options) fetcher() *forecast.Fetcher {
	if o.HTTPClient != nil {
		return forecast.NewFetcherWithClient(o.HTTPClient, UserAgent())
	}
	return forecast.NewFetcher(o.Timeout, UserAgent())
}
