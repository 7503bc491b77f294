// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/hemolymph/internal/api"
	"github.com/starford/hemolymph/internal/cardservice"
	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/index"
	"github.com/starford/hemolymph/internal/sse"
	"github.com/starford/hemolymph/internal/web"
)

// runtime holds the opened catalog, index and card service.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	store  *catalog.FS
	db     *index.DB
	svc    *cardservice.Service
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

// open applies opts, sets up logging and opens the catalog and index.
func open(opts []Option) (*runtime, error) {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure catalog directory exists.
	if err := os.MkdirAll(cfg.Catalog.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	store, err := catalog.NewFS(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  store,
		db:     db,
		svc:    cardservice.NewService(store, db),
	}, nil
}

// Run starts the web server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	rt, err := open(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg, logger := rt.cfg, rt.logger

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	metrics := web.NewMetrics()
	pages := web.NewPages(cfg.Site.Web(), cfg.Render.MaxDepth)
	webRouter := web.NewRouter(web.NewHandler(rt.svc, pages, metrics, logger))

	apiRouter := api.NewRouter(rt.svc, api.RouterConfig{
		AuthEnabled:    cfg.Auth.AuthEnabled(),
		Token:          cfg.Auth.Token,
		AllowedOrigins: cfg.Site.AllowedOrigins,
		Events:         broker,
	})

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", metrics.Handler())
	r.Mount("/api", apiRouter)
	r.Mount("/", webRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start catalog watcher with SSE callback.
	g.Go(func() error {
		if err := index.Watch(gCtx, rt.db, rt.store, rt.store.Root(), logger, broker.PublishCardChange); err != nil {
			logger.Error("catalog watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
