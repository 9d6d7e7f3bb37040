package render

import (
	"time"

	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/morikuni/failure/v2"
)

// DateMode selects the output of FormatDate
type DateMode int

const (
	// DateModeDate formats as 2006-01-02
	DateModeDate DateMode = iota
	// DateModeTime formats as 15:04
	DateModeTime
	// DateModeDay formats as the weekday name
	DateModeDay
)

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

var dateFormats = map[DateMode]string{
	DateModeDate: "2006-01-02",
	DateModeTime: "15:04",
	DateModeDay:  "Monday",
}

// FormatDate reformats a feed timestamp. Feed timestamps carry no zone and are printed as local to the place.
func FormatDate(value string, mode DateMode) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dateFormats[mode]), nil
		}
	}
	return "", failure.New(forecast.ErrParse,
		failure.Message("Forecast contains an invalid time: "+value),
		failure.Context{"value": value},
	)
}
