// Package render formats parsed forecast feeds for the terminal.
package render

import (
	"bytes"
	"io"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/morikuni/failure/v2"
)

// Mode selects which report is rendered
type Mode string

const (
	ModeTabular Mode = "tabular"
	ModeHourly  Mode = "hourly"
	ModeText    Mode = "text"
)

// Options configures a Renderer
type Options struct {
	TableFormat TableFormat
	// MarkdownStyle is the glamour style used by text forecasts.
	// "auto" detects the terminal background, empty means "notty".
	MarkdownStyle string
	// WordWrap is the column text forecasts are wrapped at. Zero means 80.
	WordWrap int
}

// Renderer writes forecast reports to a writer
type Renderer struct {
	out  io.Writer
	opts Options
	bold lipgloss.Style
}

// New creates a renderer writing to out
func New(out io.Writer, opts Options) *Renderer {
	if opts.TableFormat == "" {
		opts.TableFormat = TableSingle
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "notty"
	}
	if opts.WordWrap == 0 {
		opts.WordWrap = 80
	}
	return &Renderer{
		out:  out,
		opts: opts,
		bold: lipgloss.NewRenderer(out).NewStyle().Bold(true),
	}
}

// Render writes the report selected by mode followed by the credits.
// The hourly report is read from hourly, the others from doc.
// Nothing is written unless both succeed.
func (r *Renderer) Render(mode Mode, doc, hourly forecast.Document) error {
	var buf bytes.Buffer
	br := *r
	br.out = &buf

	var err error
	switch mode {
	case ModeHourly:
		err = br.Hourly(hourly)
	case ModeText:
		err = br.Text(doc)
	default:
		err = br.Tabular(doc)
	}
	if err != nil {
		return err
	}
	if err := br.Credits(doc); err != nil {
		return err
	}
	return r.write(buf.String())
}

// Tabular writes the multi-day table. Rows are grouped by separators every fourth period.
func (r *Renderer) Tabular(doc forecast.Document) error {
	slots, err := decodeSlots[tabularSlot](doc, "forecast", "tabular", "time")
	if err != nil {
		return err
	}
	spans, err := decodeSlots[spanSlot](doc, "forecast", "tabular", "time")
	if err != nil {
		return err
	}
	heading, err := r.locationHeading(doc, slots[0])
	if err != nil {
		return err
	}

	t := newTable(r.opts.TableFormat, "Day", "Time", "Temp.", "Precip.", "Wind")
	for i, slot := range slots {
		var day string
		switch {
		case i == 0 || i%4 == 1:
			day, err = FormatDate(slot.Period.From, DateModeDay)
		case i%4 == 2:
			day, err = FormatDate(slot.Period.From, DateModeDate)
		}
		if err != nil {
			return err
		}

		from, err := FormatDate(spans[i].Period.From, DateModeTime)
		if err != nil {
			return err
		}
		to, err := FormatDate(spans[i].Period.To, DateModeTime)
		if err != nil {
			return err
		}

		t.addRow(day, from+" - "+to, slot.temperature(), slot.precipitation(), slot.wind())
		if i%4 == 0 {
			t.addSeparator()
		}
	}

	return r.write(
		r.bold.Render("Weather forecast"), "\n",
		r.bold.Render(heading), "\n",
		t.String(),
	)
}

// Hourly writes one row per time slot of an hourly feed
func (r *Renderer) Hourly(doc forecast.Document) error {
	slots, err := decodeSlots[tabularSlot](doc, "forecast", "tabular", "time")
	if err != nil {
		return err
	}
	heading, err := r.locationHeading(doc, slots[0])
	if err != nil {
		return err
	}

	t := newTable(r.opts.TableFormat, "Time", "Temp.", "Precip.", "Wind")
	for _, slot := range slots {
		day, err := FormatDate(slot.Period.From, DateModeDay)
		if err != nil {
			return err
		}
		at, err := FormatDate(slot.Period.From, DateModeTime)
		if err != nil {
			return err
		}
		t.addRow(day+" "+at, slot.temperature(), slot.precipitation(), slot.wind())
	}

	return r.write(
		r.bold.Render("Hourly weather forecast"), "\n",
		r.bold.Render(heading), "\n",
		t.String(),
	)
}

// Text writes the free-text forecast, one weekday heading per slot
func (r *Renderer) Text(doc forecast.Document) error {
	slots, err := decodeSlots[textSlot](doc, "forecast", "text", "location", "time")
	if err != nil {
		return err
	}

	converter := html2md.NewConverter("", true, &html2md.Options{})
	var md strings.Builder
	for _, slot := range slots {
		day, err := FormatDate(slot.Period.From, DateModeDay)
		if err != nil {
			return err
		}
		body, err := converter.ConvertString(slot.Body)
		if err != nil {
			body = slot.Body
		}
		md.WriteString("## " + day + "\n\n" + body + "\n\n")
	}

	out, err := r.markdown(md.String())
	if err != nil {
		return err
	}

	return r.write(
		r.bold.Render("Text weather forecast"), "\n\n",
		out,
	)
}

// Credits writes the attribution the feed asks to be shown
func (r *Renderer) Credits(doc forecast.Document) error {
	text, err := doc.String("credit", "link", forecast.AttributesKey, "text")
	if err != nil {
		return err
	}
	u, err := doc.String("credit", "link", forecast.AttributesKey, "url")
	if err != nil {
		return err
	}
	return r.write(r.bold.Render(text), "\n", r.bold.Render(u), "\n")
}

// locationHeading is "<name> <country> <date of the first period>"
func (r *Renderer) locationHeading(doc forecast.Document, first tabularSlot) (string, error) {
	name, err := doc.String("location", "name")
	if err != nil {
		return "", err
	}
	country, err := doc.String("location", "country")
	if err != nil {
		return "", err
	}
	date, err := FormatDate(first.Period.From, DateModeDate)
	if err != nil {
		return "", err
	}
	return name + " " + country + " " + date, nil
}

func (r *Renderer) markdown(md string) (string, error) {
	style := glamour.WithStandardStyle(r.opts.MarkdownStyle)
	if r.opts.MarkdownStyle == "auto" {
		style = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(r.opts.WordWrap))
	if err != nil {
		return "", failure.Wrap(err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", failure.Wrap(err)
	}
	return out, nil
}

func (r *Renderer) write(parts ...string) error {
	_, err := io.WriteString(r.out, strings.Join(parts, ""))
	return err
}
