// Package web serves the browser pages of the card database.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/starford/hemolymph/internal/apperr"
	"github.com/starford/hemolymph/internal/models"
	"github.com/starford/hemolymph/internal/richtext"
)

// Display messages shown in place of page content.
const (
	MsgCardNotFound  = "Error: card not found"
	MsgUnreachable   = "Error: Server couldn't be reached"
	MsgNotACard      = "Error: Server sent something that is not a card"
	MsgTextTooDeep   = "Error: card text is nested too deeply to display"
	MsgPageNotFound  = "Error: page not found"
	MsgRenderFailure = "Error: page could not be rendered"
)

// CardSource supplies the cards shown on the pages.
type CardSource interface {
	GetCard(ctx context.Context, id string) (*models.Card, error)
	Query(ctx context.Context, query string) models.QueryResult
}

// Handler holds the page handlers.
type Handler struct {
	src     CardSource
	pages   *Pages
	metrics *Metrics
	logger  *slog.Logger
}

// NewHandler creates a new Handler. metrics may be nil.
func NewHandler(src CardSource, pages *Pages, metrics *Metrics, logger *slog.Logger) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{src: src, pages: pages, metrics: metrics, logger: logger}
}

// NewRouter creates a chi router serving the browser pages.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(Assets()))))

	r.Get("/", h.Index)
	r.Get("/howto", h.HowTo)
	r.Get("/card/{id}", h.Card)
	r.Get("/card/{id}/{index}", h.Card)
	r.Get("/{query}", h.Search)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, "not_found", "", MsgPageNotFound)
	})

	return r
}

// urlParam returns the decoded chi URL parameter key. chi matches against
// RawPath when it is set and against the decoded Path otherwise.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Index handles GET /. A submitted search form redirects to the query's own
// page; otherwise every card is listed.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		http.Redirect(w, r, h.pages.Routes.SearchURL(q), http.StatusFound)
		return
	}
	h.search(w, r, "")
}

// Search handles GET /{query}.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, urlParam(r, "query"))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, query string) {
	res := h.src.Query(r.Context(), query)

	status := http.StatusOK
	if res.Type == models.QueryResultError {
		h.logger.Error("search failed", slog.String("query", query), slog.String("error", res.Message))
		h.metrics.RenderErrors.WithLabelValues("search").Inc()
		status = http.StatusInternalServerError
	}

	name := ""
	if query != "" {
		name = "Searching"
	}
	h.metrics.PagesRendered.WithLabelValues("search").Inc()
	h.writePage(w, status, h.pages.Page(name, query, h.pages.SearchResults(res)...))
}

// Card handles GET /card/{id} and GET /card/{id}/{index}.
func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	idx := 0
	if raw := chi.URLParam(r, "index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusNotFound, "bad_index", "", MsgPageNotFound)
			return
		}
		idx = n
	}

	card, err := h.src.GetCard(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "card_not_found", "", MsgCardNotFound)
		case errors.Is(err, apperr.ErrInvalidCard):
			h.logger.Error("card decode failed", slog.String("id", id), slog.String("error", err.Error()))
			h.writeError(w, http.StatusInternalServerError, "invalid_card", "", MsgNotACard)
		default:
			h.logger.Error("get card failed", slog.String("id", id), slog.String("error", err.Error()))
			h.writeError(w, http.StatusInternalServerError, "unreachable", "", MsgUnreachable)
		}
		return
	}

	content, err := h.pages.CardDetails(card, idx)
	if err != nil {
		if errors.Is(err, richtext.ErrTooDeep) {
			h.logger.Warn("card text too deep", slog.String("id", id))
			h.writeError(w, http.StatusInternalServerError, "too_deep", card.Name, MsgTextTooDeep)
			return
		}
		h.logger.Error("render card failed", slog.String("id", id), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "render", card.Name, MsgRenderFailure)
		return
	}

	h.metrics.ParagraphsRendered.Add(float64(len(richtext.Segment(card.Description))))
	h.metrics.PagesRendered.WithLabelValues("card").Inc()
	h.writePage(w, http.StatusOK, h.pages.Page(card.Name, "", content...))
}

// HowTo handles GET /howto.
func (h *Handler) HowTo(w http.ResponseWriter, _ *http.Request) {
	content, err := HowTo()
	if err != nil {
		h.logger.Error("render howto failed", slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "render", "", MsgRenderFailure)
		return
	}
	h.metrics.PagesRendered.WithLabelValues("howto").Inc()
	h.writePage(w, http.StatusOK, h.pages.Page("How To", "", content...))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, reason, name, msg string) {
	h.metrics.RenderErrors.WithLabelValues(reason).Inc()
	h.writePage(w, status, h.pages.Page(name, "", ErrorBlock(msg)))
}

// writePage renders doc into a buffer before writing the response.
func (h *Handler) writePage(w http.ResponseWriter, status int, doc *html.Node) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, doc); err != nil {
		h.logger.Error("write page failed", slog.String("error", err.Error()))
		http.Error(w, MsgRenderFailure, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
