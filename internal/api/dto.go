package api

import "github.com/starford/hemolymph/internal/models"

// Card is the card response type (aliased from the domain layer).
type Card = models.Card

// QueryResult is the search response type (aliased from the domain layer).
type QueryResult = models.QueryResult

// WriteCardResponse is returned after a card is created or replaced.
type WriteCardResponse struct {
	ID   string `json:"id" example:"vampire-mantis" validate:"required"`
	Path string `json:"path" example:"vampire-mantis.json" validate:"required"`
}
