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

	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/assets"
	"github.com/starford/ansuz/internal/contact"
	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/delivery"
	"github.com/starford/ansuz/internal/notify"
	"github.com/starford/ansuz/internal/prefs"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/tracker"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.String("prefs_path", cfg.Prefs.Path),
		slog.Bool("delivery_configured", cfg.Delivery.Configured()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Load site content.
	store, err := content.NewStore(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	// Preference store.
	prefStore, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	defer prefStore.Close()

	// SSE broker.
	broker := sse.NewBroker(cfg.Tracker.SectionThrottle())
	defer broker.Close()

	// Notification slot: transitions stream out as SSE events.
	slot := notify.NewSlot(cfg.Notify.AutoDismiss(), func(n notify.Notification) {
		if n.Visible {
			broker.Publish(sse.Event{Type: "notification.raised", Data: n})
			return
		}
		broker.Publish(sse.Event{Type: "notification.cleared", Data: n})
	})

	// Scroll section tracker and animation-trigger registry.
	trk := tracker.New(cfg.Tracker.LookaheadBias, broker.PublishSectionChange)
	reg := tracker.NewRegistry()

	// Delivery sender (overridable in tests).
	sender := app.sender
	if sender == nil {
		sender = delivery.NewClient(cfg.Delivery.Endpoint, cfg.Delivery.Timeout())
	}

	creds := contact.Credentials{
		ServiceID:  cfg.Delivery.ServiceID,
		TemplateID: cfg.Delivery.TemplateID,
		PublicKey:  cfg.Delivery.PublicKey,
	}
	pipeline := contact.NewPipeline(sender, slot, creds, func(kind string) {
		broker.Publish(sse.Event{Type: "cue.triggered", Data: map[string]string{"target": kind}})
	})

	// Static assets and resume download.
	assetHandler, err := assets.New(cfg.Assets.Dir, cfg.Assets.Resume)
	if err != nil {
		return fmt.Errorf("init assets: %w", err)
	}

	// Build API router.
	h := api.NewHandler(store, trk, reg, pipeline, slot, prefStore, broker)
	apiRouter := api.NewRouter(h, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Asset routes.
	r.Get("/resume", assetHandler.Resume)
	r.Get("/static/*", assetHandler.Static)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the content file and hot-reload on change.
	g.Go(func() error {
		return content.Watch(gCtx, store, logger, func() {
			broker.Publish(sse.Event{Type: "content.updated", Data: store.Sections()})
		})
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
