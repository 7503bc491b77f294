package richtext

import (
	"strconv"
	"strings"
)

// Text returns the visible text of rs, one paragraph per line. Saga items
// are numbered and their continuation lines indented.
func Text(rs RichString) string {
	return strings.Join(Lines(rs), "\n")
}

// Lines returns the visible text of rs as lines. Empty paragraphs are skipped.
// Sagas nested deeper than DefaultMaxDepth are omitted.
func Lines(rs RichString) []string {
	return LinesFunc(rs, InlineText)
}

// LinesFunc is Lines with each inline paragraph formatted by inline.
func LinesFunc(rs RichString, inline func(Paragraph) string) []string {
	return lines(rs, 0, inline)
}

func lines(rs RichString, depth int, inline func(Paragraph) string) []string {
	var out []string
	for _, p := range Segment(rs) {
		if len(p) == 1 {
			if s, ok := p[0].(Saga); ok {
				if depth < DefaultMaxDepth {
					out = append(out, sagaLines(s, depth+1, inline)...)
				}
				continue
			}
		}
		if line := inline(p); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func sagaLines(s Saga, depth int, inline func(Paragraph) string) []string {
	var out []string
	for i, item := range s.Items {
		marker := strconv.Itoa(i+1) + ". "
		indent := strings.Repeat(" ", len(marker))
		sub := lines(item, depth, inline)
		if len(sub) == 0 {
			out = append(out, strings.TrimSpace(marker))
			continue
		}
		out = append(out, marker+sub[0])
		for _, l := range sub[1:] {
			out = append(out, indent+l)
		}
	}
	return out
}

// InlineText concatenates the visible text of a paragraph's inline elements.
func InlineText(p Paragraph) string {
	var b strings.Builder
	for _, el := range p {
		switch e := el.(type) {
		case PlainText:
			b.WriteString(e.Text)
		case CardReference:
			b.WriteString(e.Display)
		case SpecificCardLink:
			b.WriteString(e.Display)
		case SearchLink:
			b.WriteString(e.Display)
		}
	}
	return b.String()
}
