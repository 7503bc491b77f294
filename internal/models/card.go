// Package models defines the domain types for Hemolymph.
package models

import (
	"encoding/json"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/hemolymph/internal/richtext"
)

// Card is one card record as served by the card database.
type Card struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Cost        int                 `json:"cost"`
	Health      int                 `json:"health"`
	Defense     int                 `json:"defense"`
	Power       int                 `json:"power"`
	Kins        []string            `json:"kins,omitempty"`
	Keywords    []string            `json:"keywords,omitempty"`
	Description richtext.RichString `json:"description"`
	FlavorText  string              `json:"flavor_text"`
	Images      []CardImage         `json:"images,omitempty"`
}

// CardImage is one artwork of a card.
type CardImage struct {
	Name    string   `json:"name"`
	Authors []string `json:"authors,omitempty"`
}

// Validate checks the fields every card must carry.
func (c *Card) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Cost, validation.Min(0)),
	)
}

// ImageName returns the image name for artwork idx, falling back to the
// card name when the card has no such artwork.
func (c *Card) ImageName(idx int) string {
	if idx >= 0 && idx < len(c.Images) && c.Images[idx].Name != "" {
		return c.Images[idx].Name
	}
	return c.Name
}

// IsCommand reports whether the card has no stats line.
func (c *Card) IsCommand() bool {
	return strings.Contains(c.Type, "command")
}

// IsBloodFlask reports whether the card has no blood cost.
func (c *Card) IsBloodFlask() bool {
	return strings.Contains(c.Type, "blood flask")
}

// CostLine returns the type and blood cost, e.g. "Creature :: 3 Blood".
// Blood flasks have no cost.
func (c *Card) CostLine() string {
	line := Titlecase(c.Type)
	if !c.IsBloodFlask() {
		line += " :: " + strconv.Itoa(c.Cost) + " Blood"
	}
	return line
}

// StatsLine returns "health/defense/power".
func (c *Card) StatsLine() string {
	return strconv.Itoa(c.Health) + "/" + strconv.Itoa(c.Defense) + "/" + strconv.Itoa(c.Power)
}

// Titlecase upper-cases the first ASCII letter of s.
func Titlecase(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Query result kinds.
const (
	QueryResultCardList = "CardList"
	QueryResultError    = "Error"
)

// QueryResult is the response of a search: either a card list or an error.
type QueryResult struct {
	Type      string `json:"type"`
	QueryText string `json:"query_text,omitempty"`
	Content   []Card `json:"content,omitempty"`
	Message   string `json:"message,omitempty"`
}

// MarshalJSON emits only the fields of the result's kind.
func (q QueryResult) MarshalJSON() ([]byte, error) {
	if q.Type == QueryResultError {
		return json.Marshal(struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}{q.Type, q.Message})
	}
	content := q.Content
	if content == nil {
		content = []Card{}
	}
	return json.Marshal(struct {
		Type      string `json:"type"`
		QueryText string `json:"query_text"`
		Content   []Card `json:"content"`
	}{q.Type, q.QueryText, content})
}

// NewCardList builds a successful QueryResult.
func NewCardList(queryText string, cards []Card) QueryResult {
	if cards == nil {
		cards = []Card{}
	}
	return QueryResult{Type: QueryResultCardList, QueryText: queryText, Content: cards}
}

// NewQueryError builds a failed QueryResult.
func NewQueryError(msg string) QueryResult {
	return QueryResult{Type: QueryResultError, Message: msg}
}
