package web

import (
	"net/url"
	"strconv"
)

// Routes builds the URLs of the browser pages. It implements
// richtext.LinkResolver.
type Routes struct{}

// CardURL returns the details page of card id.
func (Routes) CardURL(id string) string {
	return "/card/" + url.PathEscape(id)
}

// ArtURL returns the details page of card id showing artwork idx.
// Artwork 0 is the card's default page.
func (r Routes) ArtURL(id string, idx int) string {
	if idx == 0 {
		return r.CardURL(id)
	}
	return r.CardURL(id) + "/" + strconv.Itoa(idx)
}

// SearchURL returns the results page for query.
func (Routes) SearchURL(query string) string {
	return "/" + url.PathEscape(query)
}

// HowToURL returns the instructions page.
func (Routes) HowToURL() string {
	return "/howto"
}
