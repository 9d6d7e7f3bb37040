package render

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report feed paths instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type attributes[T any] struct {
	Attributes T `mapstructure:"@attributes"`
}

type period struct {
	From string `mapstructure:"from" validate:"required"`
	To   string `mapstructure:"to"`
}

type precipitation struct {
	Value    string `mapstructure:"value" validate:"required"`
	MinValue string `mapstructure:"minvalue"`
	MaxValue string `mapstructure:"maxvalue"`
}

type windDirection struct {
	Name string `mapstructure:"name" validate:"required"`
}

type windSpeed struct {
	Name string `mapstructure:"name" validate:"required"`
	MPS  string `mapstructure:"mps" validate:"required"`
}

type temperature struct {
	Unit  string `mapstructure:"unit" validate:"required"`
	Value string `mapstructure:"value" validate:"required"`
}

// tabularSlot is one forecast.tabular.time element
type tabularSlot struct {
	Period        period                    `mapstructure:"@attributes"`
	Precipitation attributes[precipitation] `mapstructure:"precipitation"`
	WindDirection attributes[windDirection] `mapstructure:"windDirection"`
	WindSpeed     attributes[windSpeed]     `mapstructure:"windSpeed"`
	Temperature   attributes[temperature]   `mapstructure:"temperature"`
}

// spanSlot is the period of a tabular slot when both ends are shown
type spanSlot struct {
	Period struct {
		From string `mapstructure:"from" validate:"required"`
		To   string `mapstructure:"to" validate:"required"`
	} `mapstructure:"@attributes"`
}

// textSlot is one forecast.text.location.time element
type textSlot struct {
	Period period `mapstructure:"@attributes"`
	Title  string `mapstructure:"title"`
	Body   string `mapstructure:"body" validate:"required"`
}

func (s tabularSlot) precipitation() string {
	p := s.Precipitation.Attributes
	if p.MinValue != "" && p.MaxValue != "" {
		return p.MinValue + " - " + p.MaxValue
	}
	return p.Value
}

func (s tabularSlot) temperature() string {
	t := s.Temperature.Attributes
	var unit string
	if r := []rune(t.Unit); len(r) > 0 {
		unit = strings.ToUpper(string(r[0]))
	}
	return t.Value + " " + unit
}

func (s tabularSlot) wind() string {
	return fmt.Sprintf("%s, %s m/s from %s",
		s.WindSpeed.Attributes.Name,
		s.WindSpeed.Attributes.MPS,
		s.WindDirection.Attributes.Name,
	)
}

// decodeSlots decodes the list found at path into typed slots and checks required fields
func decodeSlots[T any](doc forecast.Document, path ...string) ([]T, error) {
	nodes, err := doc.List(path...)
	if err != nil {
		return nil, err
	}

	slots := make([]T, len(nodes))
	for i, node := range nodes {
		at := strings.Join(path, ".") + fmt.Sprintf(".%d", i)
		if err := mapstructure.Decode(node, &slots[i]); err != nil {
			return nil, failure.Translate(err, forecast.ErrMissingField,
				failure.Message(fmt.Sprintf("Forecast has an unexpected structure at %q", at)),
				failure.Context{"path": at},
			)
		}
		if err := validate.Struct(slots[i]); err != nil {
			field := at
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				_, ns, _ := strings.Cut(verrs[0].Namespace(), ".")
				field = at + "." + ns
			}
			return nil, failure.New(forecast.ErrMissingField,
				failure.Message(fmt.Sprintf("Forecast is missing %q", field)),
				failure.Context{"path": field},
			)
		}
	}
	return slots, nil
}
