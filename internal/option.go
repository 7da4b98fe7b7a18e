package internal

import "github.com/starford/ansuz/internal/delivery"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	sender delivery.Sender
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSender overrides the delivery sender. Used by tests to avoid real
// network calls; when unset, an HTTP client for the configured endpoint
// is built.
func WithSender(s delivery.Sender) Option {
	return func(a *application) {
		a.sender = s
	}
}
