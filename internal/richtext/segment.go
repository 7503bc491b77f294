package richtext

import "strings"

// Segment splits a rich string into paragraphs.
//
// Text is split on newlines and empty lines are dropped, except that a
// leading empty line leaves an empty first paragraph. Card references and
// links stay inline with the surrounding text. A Saga always sits alone in
// its own paragraph, and a LineBreak starts a new, possibly empty, paragraph.
// Empty input yields no paragraphs.
func Segment(input RichString) []Paragraph {
	var (
		paragraphs []Paragraph
		open       bool // whether paragraphs[len-1] accepts more inline elements
	)

	appendInline := func(el Element) {
		if !open {
			paragraphs = append(paragraphs, Paragraph{})
			open = true
		}
		last := len(paragraphs) - 1
		paragraphs[last] = append(paragraphs[last], el)
	}

	for _, el := range input {
		switch e := el.(type) {
		case PlainText:
			if len(paragraphs) == 0 {
				paragraphs = append(paragraphs, Paragraph{})
				open = true
			}
			for i, line := range splitLines(e.Text) {
				switch {
				case i == 0:
					if line != "" {
						appendInline(PlainText{Text: line})
					}
				case line == "":
					open = false
				default:
					paragraphs = append(paragraphs, Paragraph{PlainText{Text: line}})
					open = true
				}
			}
		case CardReference, SpecificCardLink, SearchLink:
			appendInline(e)
		case Saga:
			paragraphs = append(paragraphs, Paragraph{e})
			open = false
		case LineBreak:
			paragraphs = append(paragraphs, Paragraph{})
			open = true
		}
	}

	return paragraphs
}

// splitLines splits s on '\n' and trims one trailing '\r' from each line.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
