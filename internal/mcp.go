package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/ansuz/internal/contact"
	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/delivery"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/notify"
	"github.com/starford/ansuz/internal/tracker"
)

// RunMCP starts the MCP server on stdin/stdout. Logs go to stderr so they
// never corrupt the stdio transport.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := content.NewStore(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	sender := app.sender
	if sender == nil {
		sender = delivery.NewClient(cfg.Delivery.Endpoint, cfg.Delivery.Timeout())
	}

	slot := notify.NewSlot(cfg.Notify.AutoDismiss(), nil)
	creds := contact.Credentials{
		ServiceID:  cfg.Delivery.ServiceID,
		TemplateID: cfg.Delivery.TemplateID,
		PublicKey:  cfg.Delivery.PublicKey,
	}
	pipeline := contact.NewPipeline(sender, slot, creds, nil)
	trk := tracker.New(cfg.Tracker.LookaheadBias, nil)

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(store, pipeline, trk).ServeStdio()
}
