package gazetteer

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joakimwinum/weatherforecast/log"
	"github.com/morikuni/failure/v2"
)

// Record is one projected row, keyed by logical field name
type Record map[string]string

// Get returns the value of a field, or an empty string if the record does not carry it
func (r Record) Get(name string) string {
	return r[name]
}

// XMLURL returns the forecast feed link of the record
func (r Record) XMLURL() string {
	return r[FieldXMLURL]
}

// LoadOptions controls how a delimited file is read
type LoadOptions struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// HeaderRow is the zero-based row holding the column names. Rows above it are skipped.
	HeaderRow int
}

// Load reads a delimited table with a header row and projects every row through keys.
// Only the columns named in keys are kept, under their logical names, in file order.
func Load(r io.Reader, keys KeySet, opts LoadOptions) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	var header []string
	for i := 0; i <= opts.HeaderRow; i++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, failure.New(ErrDataLoad,
					failure.Message("Dataset has no header row"),
					failure.Context{"header_row": strconv.Itoa(opts.HeaderRow)},
				)
			}
			return nil, failure.Translate(err, ErrDataLoad,
				failure.Message("Failed to read dataset header"),
			)
		}
		header = row
	}

	index := make(map[string]int, len(header))
	for i, column := range header {
		column = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
		if _, ok := index[column]; !ok {
			index[column] = i
		}
	}

	positions := make([]int, len(keys))
	for i, k := range keys {
		pos, ok := index[k.Column]
		if !ok {
			return nil, failure.New(ErrDataLoad,
				failure.Message("Dataset is missing a required column"),
				failure.Context{"column": k.Column},
			)
		}
		positions[i] = pos
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, failure.Translate(err, ErrDataLoad,
				failure.Message("Failed to parse dataset"),
			)
		}

		record := make(Record, len(keys))
		for i, k := range keys {
			if positions[i] < len(row) {
				record[k.Name] = row[positions[i]]
			} else {
				record[k.Name] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// LoadFile reads a comma separated file with the header on the first row
func LoadFile(path string, keys KeySet) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.Translate(err, ErrDataLoad,
			failure.Message("Failed to open dataset"),
			failure.Context{"path": path},
		)
	}
	defer f.Close()

	records, err := Load(f, keys, LoadOptions{})
	if err != nil {
		return nil, failure.Wrap(err, failure.Context{"path": path})
	}

	log.Debug("Dataset loaded", "path", path, "rows", len(records))
	return records, nil
}
