package web

import (
	"strings"

	"github.com/starford/hemolymph/internal/models"
)

// DefaultSiteTitle is used when no site title is configured.
const DefaultSiteTitle = "Hemolymph"

// Site holds the presentation settings of the browser pages.
type Site struct {
	Title        string
	ImageBaseURL string
	LogoURL      string
}

func (s Site) title() string {
	if s.Title == "" {
		return DefaultSiteTitle
	}
	return s.Title
}

// PageTitle returns the document title for a page named name:
// "name - Site", or just the site title when name is blank.
func (s Site) PageTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.title()
	}
	return name + " - " + s.title()
}

var imageNameReplacer = strings.NewReplacer(" ", "", "ä", "a")

// ImageURL returns the URL of the image file called name.
func (s Site) ImageURL(name string) string {
	return s.ImageBaseURL + imageNameReplacer.Replace(name) + ".png"
}

// CardImageURL returns the URL of artwork idx of c.
func (s Site) CardImageURL(c *models.Card, idx int) string {
	return s.ImageURL(c.ImageName(idx))
}

// AuthorLabel describes the authors of an artwork.
func AuthorLabel(authors []string) string {
	switch len(authors) {
	case 0:
		return "Unspecified author"
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al"
	}
}
