package forecast

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/morikuni/failure/v2"
	"golang.org/x/net/html/charset"
)

type element struct {
	name     string
	attrs    map[string]any
	children map[string]any
	text     strings.Builder
}

func (e *element) add(name string, value any) {
	if e.children == nil {
		e.children = make(map[string]any)
	}
	switch existing := e.children[name].(type) {
	case nil:
		e.children[name] = value
	case []any:
		e.children[name] = append(existing, value)
	default:
		e.children[name] = []any{existing, value}
	}
}

func (e *element) value() any {
	text := strings.TrimSpace(e.text.String())
	if e.attrs == nil && e.children == nil {
		return text
	}

	node := make(map[string]any, len(e.children)+2)
	for k, v := range e.children {
		node[k] = v
	}
	if e.attrs != nil {
		node[AttributesKey] = e.attrs
	}
	if text != "" {
		node[TextKey] = text
	}
	return node
}

// Parse reads an XML feed into a Document
func Parse(body string) (Document, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*element
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, failure.Translate(err, ErrParse,
				failure.Message("Failed to parse forecast: "+err.Error()),
			)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local}
			if len(t.Attr) > 0 {
				el.attrs = make(map[string]any, len(t.Attr))
				for _, a := range t.Attr {
					el.attrs[a.Name.Local] = a.Value
				}
			}
			stack = append(stack, el)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return rootDocument(el), nil
			}
			stack[len(stack)-1].add(el.name, el.value())
		}
	}

	return nil, failure.New(ErrParse, failure.Message("Forecast feed has no root element"))
}

func rootDocument(root *element) Document {
	switch v := root.value().(type) {
	case map[string]any:
		return Document(v)
	case string:
		if v == "" {
			return Document{}
		}
		return Document{TextKey: v}
	}
	return Document{}
}
