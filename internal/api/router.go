package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterConfig configures the API router.
type RouterConfig struct {
	// AuthEnabled enforces Bearer token auth on write routes.
	AuthEnabled bool
	Token       string
	// AllowedOrigins lists the CORS origins; empty allows any.
	AllowedOrigins []string
	// Events, if non-nil, is mounted at GET /events.
	Events http.Handler
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc CardService, cfg RouterConfig) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	// Reads are public.
	r.Get("/card", h.GetCard)
	r.Get("/search", h.Search)
	if cfg.Events != nil {
		r.Get("/events", cfg.Events.ServeHTTP)
	}

	// Catalog writes.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.AuthEnabled, cfg.Token))
		r.Post("/cards", h.CreateCard)
		r.Put("/cards/{id}", h.PutCard)
		r.Delete("/cards/{id}", h.DeleteCard)
	})

	return r
}
