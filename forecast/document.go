package forecast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/morikuni/failure/v2"
)

const (
	// AttributesKey holds the attributes of an element
	AttributesKey = "@attributes"
	// TextKey holds the character data of an element that also has attributes or children
	TextKey = "@text"
)

// HourlyLinkIndex is the position of the hourly feed in links/link.
// The feed does not label its links, so this relies on the order the
// upstream service publishes them in.
const HourlyLinkIndex = 1

// Document is a parsed feed without a fixed schema.
// Nodes are map[string]any for elements, []any for repeated elements
// and string for text-only elements. The root element itself is not
// part of the path, so a feed's <location> is found under "location".
type Document map[string]any

// Lookup walks the document along path. Path segments address map keys,
// or positions when the current node is a list.
func (d Document) Lookup(path ...string) (any, error) {
	var node any = map[string]any(d)
	for i, segment := range path {
		switch n := node.(type) {
		case map[string]any:
			next, ok := n[segment]
			if !ok {
				return nil, missingField(path[:i+1])
			}
			node = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, missingField(path[:i+1])
			}
			node = n[idx]
		default:
			return nil, missingField(path[:i+1])
		}
	}
	return node, nil
}

// String looks up a text node
func (d Document) String(path ...string) (string, error) {
	node, err := d.Lookup(path...)
	if err != nil {
		return "", err
	}
	switch n := node.(type) {
	case string:
		return n, nil
	case map[string]any:
		if text, ok := n[TextKey].(string); ok {
			return text, nil
		}
	}
	return "", missingField(path)
}

// List looks up a repeated element. An element that occurs once is returned as a list of one.
func (d Document) List(path ...string) ([]any, error) {
	node, err := d.Lookup(path...)
	if err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case []any:
		return n, nil
	case map[string]any:
		return []any{n}, nil
	}
	return nil, missingField(path)
}

// HourlyURL returns the link to the hourly feed published inside a forecast feed
func (d Document) HourlyURL() (string, error) {
	u, err := d.String("links", "link", strconv.Itoa(HourlyLinkIndex), AttributesKey, "url")
	if err != nil {
		return "", failure.Wrap(err, failure.Message("Forecast feed has no hourly link"))
	}
	if u == "" {
		return "", missingField([]string{"links", "link", strconv.Itoa(HourlyLinkIndex), AttributesKey, "url"})
	}
	return u, nil
}

func missingField(path []string) error {
	p := strings.Join(path, ".")
	return failure.New(ErrMissingField,
		failure.Message(fmt.Sprintf("Forecast is missing %q", p)),
		failure.Context{"path": p},
	)
}
