package richtext

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMaxDepth bounds Saga nesting when a Renderer has no explicit limit.
const DefaultMaxDepth = 16

// ErrTooDeep is returned when Saga items nest beyond the renderer's limit.
var ErrTooDeep = errors.New("richtext: too deeply nested")

// LinkResolver turns link targets into hrefs. The renderer only builds the
// reference; whether the target exists is up to the caller.
type LinkResolver interface {
	CardURL(id string) string
	SearchURL(query string) string
}

// Renderer turns paragraphs into HTML nodes.
type Renderer struct {
	Links    LinkResolver
	MaxDepth int
}

// NewRenderer returns a Renderer that resolves links with links.
func NewRenderer(links LinkResolver, maxDepth int) *Renderer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Renderer{Links: links, MaxDepth: maxDepth}
}

// Render returns one <p> block per paragraph, in order.
func (r *Renderer) Render(paragraphs []Paragraph) ([]*html.Node, error) {
	return r.render(paragraphs, 0)
}

// RenderString segments rs and renders the result.
func (r *Renderer) RenderString(rs RichString) ([]*html.Node, error) {
	return r.render(Segment(rs), 0)
}

func (r *Renderer) render(paragraphs []Paragraph, depth int) ([]*html.Node, error) {
	out := make([]*html.Node, 0, len(paragraphs))
	for _, p := range paragraphs {
		block := newElement(atom.P)
		for _, el := range p {
			n, err := r.renderElement(el, depth)
			if err != nil {
				return nil, err
			}
			block.AppendChild(n)
		}
		out = append(out, block)
	}
	return out, nil
}

func (r *Renderer) renderElement(el Element, depth int) (*html.Node, error) {
	switch e := el.(type) {
	case PlainText:
		return newText(e.Text), nil
	case CardReference:
		return newText(e.Display), nil
	case SpecificCardLink:
		return newLink(r.Links.CardURL(e.ID), e.Display), nil
	case SearchLink:
		return newLink(r.Links.SearchURL(e.Query), e.Display), nil
	case Saga:
		return r.renderSaga(e, depth+1)
	case LineBreak:
		return newElement(atom.Br), nil
	default:
		return nil, fmt.Errorf("richtext: unknown element %T", el)
	}
}

func (r *Renderer) renderSaga(s Saga, depth int) (*html.Node, error) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: saga depth exceeds %d", ErrTooDeep, maxDepth)
	}
	list := newElement(atom.Ol)
	for _, item := range s.Items {
		blocks, err := r.render(Segment(item), depth)
		if err != nil {
			return nil, err
		}
		li := newElement(atom.Li)
		for _, b := range blocks {
			li.AppendChild(b)
		}
		list.AppendChild(li)
	}
	return list, nil
}

// WriteHTML serialises nodes to w in order.
func WriteHTML(w io.Writer, nodes []*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("richtext: write html: %w", err)
		}
	}
	return nil
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func newLink(href, label string) *html.Node {
	a := newElement(atom.A, html.Attribute{Key: "href", Val: href})
	a.AppendChild(newText(label))
	return a
}
