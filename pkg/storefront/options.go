package storefront

import (
	"log/slog"
	"net/http"

	"github.com/titanstore/storefront/pkg/session"
)

// Options configures the storefront.
type Options struct {
	// Config is the client configuration (optional, defaults apply).
	Config *Config

	// Store is the session store (optional, built from config if not provided).
	Store session.Store

	// Bus is the authorization signal bus (optional, created if not provided).
	Bus *session.Bus

	// HTTPClient is the transport for the API client (optional, built
	// from config if not provided).
	HTTPClient *http.Client

	// Logger is the structured logger (optional, slog.Default if not provided).
	Logger *slog.Logger
}

// Option is a functional option for configuring the storefront.
type Option func(*Options)

// WithConfig sets the configuration.
func WithConfig(cfg *Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithStore sets the session store.
func WithStore(store session.Store) Option {
	return func(o *Options) {
		o.Store = store
	}
}

// WithBus sets the authorization signal bus.
func WithBus(bus *session.Bus) Option {
	return func(o *Options) {
		o.Bus = bus
	}
}

// WithHTTPClient sets the HTTP transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = httpc
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
