package web

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func link(href string, children ...*html.Node) *html.Node {
	return appendAll(el(atom.A, "href", href), children...)
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// document wraps body in a full page with the given title.
func document(title string, body ...*html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := appendAll(el(atom.Head),
		el(atom.Meta, "charset", "utf-8"),
		el(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"),
		appendAll(el(atom.Title), text(title)),
		el(atom.Link, "rel", "stylesheet", "href", "/assets/style.css"),
	)
	root := appendAll(el(atom.Html, "lang", "en"), head, appendAll(el(atom.Body), body...))
	doc.AppendChild(root)
	return doc
}

func writeDocument(w io.Writer, doc *html.Node) error {
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("web: render page: %w", err)
	}
	return nil
}
