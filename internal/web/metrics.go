package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the page layer.
type Metrics struct {
	registry *prometheus.Registry

	PagesRendered      *prometheus.CounterVec
	RenderErrors       *prometheus.CounterVec
	ParagraphsRendered prometheus.Counter
}

// NewMetrics creates the page metrics on a registry of their own.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hemolymph",
			Name:      "pages_rendered_total",
			Help:      "Total number of pages rendered",
		},
		[]string{"page"},
	)

	renderErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hemolymph",
			Name:      "render_errors_total",
			Help:      "Total number of pages that failed to render",
		},
		[]string{"reason"},
	)

	paragraphs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hemolymph",
			Name:      "paragraphs_rendered_total",
			Help:      "Total number of description paragraphs rendered",
		},
	)

	registry.MustRegister(pages, renderErrors, paragraphs)

	return &Metrics{
		registry:           registry,
		PagesRendered:      pages,
		RenderErrors:       renderErrors,
		ParagraphsRendered: paragraphs,
	}
}

// Handler exposes the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
