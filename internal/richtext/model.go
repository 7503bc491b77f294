// Package richtext segments and renders the formatted text fields of a card.
package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Element is one fragment of a RichString.
type Element interface {
	element()
}

// PlainText is a literal run of text. It may contain embedded newlines.
type PlainText struct {
	Text string
}

// CardReference mentions a card without linking to it.
// Identity is carried through untouched and is never used for rendering.
type CardReference struct {
	Display  string
	Identity json.RawMessage
}

// SpecificCardLink links to the details page of one card.
type SpecificCardLink struct {
	Display string
	ID      string
}

// SearchLink links to the results of a stored search query.
type SearchLink struct {
	Display string
	Query   string
}

// Saga is an enumerated block whose items are full rich strings.
type Saga struct {
	Items []RichString
}

// LineBreak forces a paragraph break.
type LineBreak struct{}

func (PlainText) element()        {}
func (CardReference) element()    {}
func (SpecificCardLink) element() {}
func (SearchLink) element()       {}
func (Saga) element()             {}
func (LineBreak) element()        {}

// RichString is an ordered sequence of elements.
type RichString []Element

// Paragraph is a run of inline elements produced by Segment.
type Paragraph []Element

// Wire tags, externally tagged the way the card service transmits them.
const (
	tagString       = "String"
	tagCardID       = "CardId"
	tagSpecificCard = "SpecificCard"
	tagCardSearch   = "CardSearch"
	tagSaga         = "Saga"
	tagLineBreak    = "LineBreak"
)

type cardIDWire struct {
	Display  string          `json:"display"`
	Identity json.RawMessage `json:"identity,omitempty"`
}

type specificCardWire struct {
	Display string `json:"display"`
	ID      string `json:"id"`
}

type cardSearchWire struct {
	Display string `json:"display"`
	Search  string `json:"search"`
}

// UnmarshalJSON decodes the wire array form of a rich string.
func (rs *RichString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*rs = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("richtext: rich string must be an array: %w", err)
	}
	out := make(RichString, 0, len(raws))
	for i, raw := range raws {
		el, err := decodeElement(raw)
		if err != nil {
			return fmt.Errorf("richtext: element %d: %w", i, err)
		}
		out = append(out, el)
	}
	*rs = out
	return nil
}

// MarshalJSON encodes the rich string in its wire form.
func (rs RichString) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(rs))
	for _, el := range rs {
		v, err := encodeElement(el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return json.Marshal(out)
}

func decodeElement(raw json.RawMessage) (Element, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == tagLineBreak {
			return LineBreak{}, nil
		}
		return PlainText{Text: bare}, nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("expected string or object: %w", err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("expected exactly one tag, got %d", len(tagged))
	}

	for tag, body := range tagged {
		switch tag {
		case tagString:
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			return PlainText{Text: s}, nil
		case tagCardID:
			var w cardIDWire
			if err := json.Unmarshal(body, &w); err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			return CardReference{Display: w.Display, Identity: w.Identity}, nil
		case tagSpecificCard:
			var w specificCardWire
			if err := json.Unmarshal(body, &w); err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			return SpecificCardLink{Display: w.Display, ID: w.ID}, nil
		case tagCardSearch:
			var w cardSearchWire
			if err := json.Unmarshal(body, &w); err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			return SearchLink{Display: w.Display, Query: w.Search}, nil
		case tagSaga:
			var items []RichString
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, fmt.Errorf("%s: %w", tag, err)
			}
			return Saga{Items: items}, nil
		case tagLineBreak:
			return LineBreak{}, nil
		default:
			return nil, fmt.Errorf("unknown element tag %q", tag)
		}
	}
	return nil, fmt.Errorf("empty element")
}

func encodeElement(el Element) (any, error) {
	switch e := el.(type) {
	case PlainText:
		return map[string]string{tagString: e.Text}, nil
	case CardReference:
		return map[string]cardIDWire{tagCardID: {Display: e.Display, Identity: e.Identity}}, nil
	case SpecificCardLink:
		return map[string]specificCardWire{tagSpecificCard: {Display: e.Display, ID: e.ID}}, nil
	case SearchLink:
		return map[string]cardSearchWire{tagCardSearch: {Display: e.Display, Search: e.Query}}, nil
	case Saga:
		items := e.Items
		if items == nil {
			items = []RichString{}
		}
		return map[string][]RichString{tagSaga: items}, nil
	case LineBreak:
		return tagLineBreak, nil
	default:
		return nil, fmt.Errorf("richtext: cannot encode element %T", el)
	}
}
