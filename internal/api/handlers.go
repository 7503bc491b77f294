package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/hemolymph/internal/models"
)

const maxCardBytes = 1 << 20

// CardService is the card catalog as used by the API.
type CardService interface {
	GetCard(ctx context.Context, id string) (*models.Card, error)
	Query(ctx context.Context, query string) models.QueryResult
	CreateCard(ctx context.Context, c *models.Card) (string, error)
	PutCard(ctx context.Context, c *models.Card) (string, error)
	DeleteCard(ctx context.Context, id string) error
}

// Handler holds API route handlers.
type Handler struct {
	svc CardService
}

// NewHandler creates a new Handler.
func NewHandler(svc CardService) *Handler {
	return &Handler{svc: svc}
}

// cardID extracts the card id path parameter.
// Supports encoded ids from clients (e.g. lost%20man, a%2Fb).
func cardID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return raw
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetCard handles GET /api/card?id=.
//
//	@Summary		Get a single card by id
//	@Tags			cards
//	@Produce		json
//	@Param			id	query		string	true	"Card id"
//	@Success		200	{object}	Card
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Router			/card [get]
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	card, err := h.svc.GetCard(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get card", id, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Search handles GET /api/search?query=.
//
//	@Summary		Search cards
//	@Description	An empty query lists every card. Failures are reported in-band as a result of type Error.
//	@Tags			cards
//	@Produce		json
//	@Param			query	query		string	false	"Search text"
//	@Success		200		{object}	QueryResult
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	res := h.svc.Query(r.Context(), query)
	if res.Type == models.QueryResultError {
		slog.Error("search failed", slog.String("query", query), slog.String("error", res.Message))
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateCard handles POST /api/cards.
//
//	@Summary		Add a card to the catalog
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			body	body		Card	true	"Card to create"
//	@Success		201		{object}	WriteCardResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards [post]
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	card, ok := decodeCard(w, r)
	if !ok {
		return
	}
	path, err := h.svc.CreateCard(r.Context(), card)
	if err != nil {
		writeServiceError(w, "create card", card.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, WriteCardResponse{ID: card.ID, Path: path})
}

// PutCard handles PUT /api/cards/{id}.
//
//	@Summary		Create or replace a card
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Card id"
//	@Param			body	body		Card	true	"Card contents"
//	@Success		200		{object}	WriteCardResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards/{id} [put]
func (h *Handler) PutCard(w http.ResponseWriter, r *http.Request) {
	card, ok := decodeCard(w, r)
	if !ok {
		return
	}
	id := cardID(r)
	if card.ID == "" {
		card.ID = id
	}
	if card.ID != id {
		writeJSON(w, http.StatusBadRequest, errorBody("id in body does not match path"))
		return
	}
	path, err := h.svc.PutCard(r.Context(), card)
	if err != nil {
		writeServiceError(w, "put card", id, err)
		return
	}
	writeJSON(w, http.StatusOK, WriteCardResponse{ID: card.ID, Path: path})
}

// DeleteCard handles DELETE /api/cards/{id}.
//
//	@Summary		Remove a card from the catalog
//	@Tags			cards
//	@Param			id	path	string	true	"Card id"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/cards/{id} [delete]
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := cardID(r)
	if err := h.svc.DeleteCard(r.Context(), id); err != nil {
		writeServiceError(w, "delete card", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCard(w http.ResponseWriter, r *http.Request) (*models.Card, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCardBytes)
	var card models.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return nil, false
	}
	return &card, true
}
