// Package present prints cards for terminals and other plain-text consumers.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/hemolymph/internal/models"
	"github.com/starford/hemolymph/internal/richtext"
)

// Styles controls how each part of a card is drawn.
type Styles struct {
	Name   lipgloss.Style
	Rule   lipgloss.Style
	Cost   lipgloss.Style
	Link   lipgloss.Style
	Flavor lipgloss.Style
	Stats  lipgloss.Style
}

// DefaultStyles are used for interactive terminals.
func DefaultStyles() Styles {
	return Styles{
		Name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Rule:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cost:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		Link:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("117")),
		Flavor: lipgloss.NewStyle().Italic(true).Faint(true),
		Stats:  lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles draw nothing but the text.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Name: s, Rule: s, Cost: s, Link: s, Flavor: s, Stats: s}
}

// Printer formats cards as lines of text.
type Printer struct {
	Styles Styles
	// RuleWidth is the width of the separator between card sections.
	RuleWidth int
}

// NewPrinter returns a Printer using styles.
func NewPrinter(styles Styles) *Printer {
	return &Printer{Styles: styles, RuleWidth: 32}
}

// WriteCard prints c to w with the default styles.
func WriteCard(w io.Writer, c *models.Card) error {
	return NewPrinter(DefaultStyles()).Write(w, c)
}

// PlainCard returns c as unstyled text.
func PlainCard(c *models.Card) string {
	return NewPrinter(PlainStyles()).String(c)
}

// Write prints c to w.
func (p *Printer) Write(w io.Writer, c *models.Card) error {
	_, err := fmt.Fprintln(w, p.String(c))
	return err
}

// String lays out c the way a card page does: name, cost line,
// description, flavor text and stats.
func (p *Printer) String(c *models.Card) string {
	rule := p.Styles.Rule.Render(strings.Repeat("─", p.RuleWidth))

	lines := []string{p.Styles.Name.Render(c.Name), rule, p.Styles.Cost.Render(c.CostLine())}

	if desc := richtext.LinesFunc(c.Description, p.inline); len(desc) > 0 {
		lines = append(lines, rule)
		lines = append(lines, desc...)
	}

	if flavor := richtext.FlavorLines(c.FlavorText); len(flavor) > 0 {
		lines = append(lines, rule)
		for _, l := range flavor {
			lines = append(lines, p.Styles.Flavor.Render(l))
		}
	}

	if !c.IsCommand() {
		lines = append(lines, rule, p.Styles.Stats.Render(c.StatsLine()))
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) inline(para richtext.Paragraph) string {
	var b strings.Builder
	for _, el := range para {
		switch e := el.(type) {
		case richtext.PlainText:
			b.WriteString(e.Text)
		case richtext.CardReference:
			b.WriteString(e.Display)
		case richtext.SpecificCardLink:
			b.WriteString(p.Styles.Link.Render(e.Display))
		case richtext.SearchLink:
			b.WriteString(p.Styles.Link.Render(e.Display))
		}
	}
	return b.String()
}
