package web

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/starford/hemolymph/internal/models"
	"github.com/starford/hemolymph/internal/richtext"
)

// Pages composes the browser pages as HTML trees.
type Pages struct {
	Site     Site
	Routes   Routes
	Renderer *richtext.Renderer
}

// NewPages returns Pages whose rich text links point at the browser routes.
func NewPages(site Site, maxDepth int) *Pages {
	routes := Routes{}
	return &Pages{
		Site:     site,
		Routes:   routes,
		Renderer: richtext.NewRenderer(routes, maxDepth),
	}
}

// Nav is the search bar shown on every page.
func (p *Pages) Nav(query string) *html.Node {
	logo := link("/")
	if p.Site.LogoURL != "" {
		logo.AppendChild(el(atom.Img, "id", "logo", "src", p.Site.LogoURL, "alt", p.Site.title()))
	} else {
		logo.AppendChild(text(p.Site.title()))
	}

	form := appendAll(el(atom.Form, "action", "/", "method", "get"),
		el(atom.Input,
			"id", "search-bar",
			"type", "text",
			"name", "q",
			"value", query,
			"placeholder", "Type your search here. Leave it empty to see all cards."),
	)

	return appendAll(el(atom.Nav, "id", "search"),
		logo,
		form,
		link(p.Routes.HowToURL(), appendAll(el(atom.Span), text("How To Use"))),
	)
}

// Page wraps content in the site layout.
func (p *Pages) Page(name, query string, content ...*html.Node) *html.Node {
	main := appendAll(el(atom.Main), content...)
	return document(p.Site.PageTitle(name), p.Nav(query), main)
}

// SearchResults renders the outcome of a search.
func (p *Pages) SearchResults(res models.QueryResult) []*html.Node {
	if res.Type == models.QueryResultError {
		return []*html.Node{SearchError(res.Message)}
	}

	readable := appendAll(el(atom.P, "id", "query_readable"),
		text("Showing "+strconv.Itoa(len(res.Content))+" "+res.QueryText))

	grid := el(atom.Div, "id", "results", "class", "card-grid")
	for i := range res.Content {
		c := &res.Content[i]
		thumb := el(atom.Img, "class", "card-result", "src", p.Site.CardImageURL(c, 0), "alt", c.Name)
		grid.AppendChild(appendAll(el(atom.Div, "class", "card_result"),
			link(p.Routes.CardURL(c.ID), thumb)))
	}
	return []*html.Node{readable, grid}
}

// CardDetails renders the details page of c showing artwork idx.
func (p *Pages) CardDetails(c *models.Card, idx int) ([]*html.Node, error) {
	description, err := p.Renderer.RenderString(c.Description)
	if err != nil {
		return nil, err
	}

	textCol := appendAll(el(atom.Div, "id", "text-description"),
		appendAll(el(atom.H1, "id", "details-title"), text(c.Name)),
		el(atom.Hr),
		appendAll(el(atom.P, "id", "cost-line"), text(c.CostLine())),
		el(atom.Hr),
	)
	appendAll(textCol, description...)

	if flavor := richtext.RenderFlavor(c.FlavorText); len(flavor) > 0 {
		textCol.AppendChild(el(atom.Hr))
		appendAll(textCol, flavor...)
	}

	if !c.IsCommand() {
		textCol.AppendChild(el(atom.Hr))
		textCol.AppendChild(appendAll(el(atom.P, "id", "stats-line"), text(c.StatsLine())))
	}

	details := appendAll(el(atom.Div, "id", "details"),
		el(atom.Img, "id", "details-preview", "src", p.Site.CardImageURL(c, idx), "alt", c.Name),
		textCol,
	)
	view := appendAll(el(atom.Div, "id", "details-view"), details)

	if len(c.Images) > 1 {
		view.AppendChild(appendAll(el(atom.H2, "class", "center-text"), text("Alternate Artwork")))
		view.AppendChild(p.alternateArt(c))
	}
	return []*html.Node{view}, nil
}

func (p *Pages) alternateArt(c *models.Card) *html.Node {
	grid := el(atom.Div, "id", "card-alts", "class", "card-grid")
	for i, img := range c.Images {
		thumb := el(atom.Img, "class", "card-result", "src", p.Site.CardImageURL(c, i), "alt", c.Name)
		grid.AppendChild(appendAll(el(atom.Div, "class", "card-alt-view"),
			appendAll(el(atom.Span, "class", "art-author"), text(AuthorLabel(img.Authors))),
			link(p.Routes.ArtURL(c.ID, i), thumb),
		))
	}
	return grid
}

// ErrorBlock is the display-only error shown in place of page content.
func ErrorBlock(msg string) *html.Node {
	return appendAll(el(atom.Div, "class", "error"), appendAll(el(atom.P), text(msg)))
}

// SearchError is shown when a search fails.
func SearchError(msg string) *html.Node {
	return appendAll(el(atom.Div, "id", "search-error"),
		appendAll(el(atom.P), appendAll(el(atom.B), text("ERROR:")), text(msg)))
}
