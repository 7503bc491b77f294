package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed assets
var assetsFS embed.FS

// Assets returns the static files served under /assets.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// HowTo renders the instructions page content from its markdown source.
func HowTo() ([]*html.Node, error) {
	src, err := assetsFS.ReadFile("assets/howto.md")
	if err != nil {
		return nil, fmt.Errorf("web: read howto: %w", err)
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("web: convert howto: %w", err)
	}
	nodes, err := html.ParseFragment(strings.NewReader(buf.String()), el(atom.Section))
	if err != nil {
		return nil, fmt.Errorf("web: parse howto: %w", err)
	}
	return []*html.Node{appendAll(el(atom.Section, "id", "instructions"), nodes...)}, nil
}
