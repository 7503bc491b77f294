package richtext

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FlavorLines splits flavor text on newlines and drops empty lines.
func FlavorLines(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// RenderFlavor wraps each non-empty flavor line in its own paragraph.
func RenderFlavor(text string) []*html.Node {
	lines := FlavorLines(text)
	out := make([]*html.Node, 0, len(lines))
	for _, line := range lines {
		p := newElement(atom.P, html.Attribute{Key: "class", Val: "flavor-line"})
		p.AppendChild(newText(line))
		out = append(out, p)
	}
	return out
}
