package forecast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

// readTestFile reads a test file from the testdata directory
func readTestFile(t *testing.T, filename string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test file %s: %v", filename, err)
	}
	return string(content)
}

func TestParse(t *testing.T) {
	doc, err := Parse(readTestFile(t, "forecast.xml"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	strings := []struct {
		path []string
		want string
	}{
		{path: []string{"location", "name"}, want: "Oslo"},
		{path: []string{"location", "country"}, want: "Norway"},
		{path: []string{"credit", "link", AttributesKey, "url"}, want: "http://www.yr.no/place/Norway/Oslo/Oslo/Oslo/"},
		{path: []string{"forecast", "tabular", "time", "1", "precipitation", AttributesKey, "maxvalue"}, want: "2.1"},
		{path: []string{"forecast", "text", "location", "time", "0", "title"}, want: "Tuesday"},
		{path: []string{"forecast", "text", "location", "time", "0", "body"}, want: "<strong>Østlandet:</strong> Sørvest bris, periodevis liten kuling."},
	}
	for _, tt := range strings {
		got, err := doc.String(tt.path...)
		if err != nil {
			t.Errorf("String(%v) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}

	times, err := doc.List("forecast", "tabular", "time")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(times) != 6 {
		t.Errorf("List() returned %d time slots, want 6", len(times))
	}
}

func TestParseStructure(t *testing.T) {
	body := `<?xml version="1.0"?>
<root version="2">
  <single a="1"/>
  <repeated>x</repeated>
  <repeated>y</repeated>
  <mixed kind="note">hello</mixed>
  <empty/>
</root>`

	doc, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Document{
		AttributesKey: map[string]any{"version": "2"},
		"single":      map[string]any{AttributesKey: map[string]any{"a": "1"}},
		"repeated":    []any{"x", "y"},
		"mixed":       map[string]any{AttributesKey: map[string]any{"kind": "note"}, TextKey: "hello"},
		"empty":       "",
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCharset(t *testing.T) {
	body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><weatherdata><location><name>Troms\xf8</name></location></weatherdata>"

	doc, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, _ := doc.String("location", "name"); got != "Tromsø" {
		t.Errorf("name = %q, want %q", got, "Tromsø")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"text only":    "no xml here",
		"unclosed":     "<weatherdata><location>",
		"mismatched":   "<weatherdata><a></b></weatherdata>",
		"bad encoding": `<?xml version="1.0" encoding="x-unknown-charset"?><a/>`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(body); !failure.Is(err, ErrParse) {
				t.Errorf("Parse() error = %v, want %s", err, ErrParse)
			}
		})
	}
}

func TestHourlyURL(t *testing.T) {
	doc, err := Parse(readTestFile(t, "forecast.xml"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := doc.HourlyURL()
	if err != nil {
		t.Fatalf("HourlyURL() error = %v", err)
	}
	if want := "http://www.yr.no/place/Norway/Oslo/Oslo/Oslo/forecast_hour_by_hour.xml"; got != want {
		t.Errorf("HourlyURL() = %q, want %q", got, want)
	}
}

func TestHourlyURLMissing(t *testing.T) {
	tests := map[string]string{
		"no links":    `<weatherdata><location><name>Oslo</name></location></weatherdata>`,
		"single link": `<weatherdata><links><link url="http://example.com/a.xml"/></links></weatherdata>`,
		"no url":      `<weatherdata><links><link url="a"/><link id="b"/></links></weatherdata>`,
		"empty url":   `<weatherdata><links><link url="a"/><link url=""/></links></weatherdata>`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(body)
			if err != nil {
				t.Fatal(err)
			}
			got, err := doc.HourlyURL()
			if !failure.Is(err, ErrMissingField) {
				t.Errorf("HourlyURL() error = %v, want %s", err, ErrMissingField)
			}
			if got != "" {
				t.Errorf("HourlyURL() = %q, want empty", got)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	doc := Document{
		"list": []any{"a", map[string]any{"k": "v"}},
		"map":  map[string]any{"k": "v"},
		"text": "t",
	}

	tests := []struct {
		name    string
		path    []string
		want    any
		wantErr bool
	}{
		{name: "list index", path: []string{"list", "1", "k"}, want: "v"},
		{name: "map key", path: []string{"map", "k"}, want: "v"},
		{name: "empty path", path: nil, want: map[string]any(doc)},
		{name: "missing key", path: []string{"nope"}, wantErr: true},
		{name: "index out of range", path: []string{"list", "2"}, wantErr: true},
		{name: "negative index", path: []string{"list", "-1"}, wantErr: true},
		{name: "key on list", path: []string{"list", "k"}, wantErr: true},
		{name: "below text", path: []string{"text", "deeper"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.Lookup(tt.path...)
			if tt.wantErr {
				if !failure.Is(err, ErrMissingField) {
					t.Errorf("Lookup() error = %v, want %s", err, ErrMissingField)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSingle(t *testing.T) {
	doc, err := Parse(`<w><forecast><tabular><time from="a"/></tabular></forecast></w>`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := doc.List("forecast", "tabular", "time")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("List() = %v, want one element", got)
	}
	if _, err := doc.List("forecast", "tabular", "time", AttributesKey, "from"); !failure.Is(err, ErrMissingField) {
		t.Errorf("List() on a text node error = %v, want %s", err, ErrMissingField)
	}
}
