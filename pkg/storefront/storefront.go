package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/titanstore/storefront/pkg/alert"
	"github.com/titanstore/storefront/pkg/api"
	"github.com/titanstore/storefront/pkg/authstate"
	"github.com/titanstore/storefront/pkg/product"
	"github.com/titanstore/storefront/pkg/session"
)

// Storefront owns the process-wide pieces every component shares: the
// session store, the authorization signal bus, and the API client.
// Components are created through it so they all observe the same session.
type Storefront struct {
	store  session.Store
	bus    *session.Bus
	client *api.Client
	log    *slog.Logger

	ownBus bool
}

// New creates a storefront from the given options.
func New(opts ...Option) (*Storefront, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	cfg := options.Config
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := options.Store
	if store == nil {
		var err error
		store, err = newStore(cfg.Session)
		if err != nil {
			return nil, err
		}
	}

	bus := options.Bus
	ownBus := false
	if bus == nil {
		bus = session.NewBus()
		ownBus = true
	}

	httpc := options.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.API.Timeout}
	}

	return &Storefront{
		store:  store,
		bus:    bus,
		client: api.NewClient(cfg.API.BaseURL, httpc, logger),
		log:    logger,
		ownBus: ownBus,
	}, nil
}

// newStore builds the session store the config describes.
func newStore(cfg SessionConfig) (session.Store, error) {
	switch cfg.Store {
	case StoreMemory:
		return session.NewMemoryStore(), nil
	case StoreFile:
		return session.NewFileStore(cfg.Path), nil
	}
	return nil, fmt.Errorf("session: unknown store %q", cfg.Store)
}

// Store returns the shared session store.
func (s *Storefront) Store() session.Store {
	return s.store
}

// Bus returns the shared authorization signal bus.
func (s *Storefront) Bus() *session.Bus {
	return s.bus
}

// API returns the shared API client.
func (s *Storefront) API() *api.Client {
	return s.client
}

// NewAuthController creates a session-sync controller bound to the shared
// store and bus.
func (s *Storefront) NewAuthController(nav authstate.Navigator, alerts alert.Alerter) *authstate.Controller {
	return authstate.NewController(s.store, s.bus, s.client, nav, alerts, s.log)
}

// NewProductWorkflow opens a product-creation workflow bound to the
// shared store. refresh runs once after a successful creation.
func (s *Storefront) NewProductWorkflow(refresh product.RefreshFunc, alerts alert.Alerter) *product.Workflow {
	return product.New(s.store, s.client, refresh, alerts, s.log)
}

// CompleteLogin is the blessed login transition: it persists the
// credentials and emits the authorization signal in the same synchronous
// turn, so no listener can observe the signal before the write is
// visible. The login surface calls this after the remote API accepts the
// user's credentials.
func (s *Storefront) CompleteLogin(ctx context.Context, token, userID string) error {
	creds := session.Credentials{Token: token, UserID: userID}
	if err := s.store.SetCredentials(ctx, creds); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	s.bus.Notify()
	s.log.Debug("storefront: login completed", "user_id", userID)
	return nil
}

// Close releases the bus when this storefront created it. A bus supplied
// through WithBus stays with its owner.
func (s *Storefront) Close() {
	if s.ownBus {
		s.bus.Close()
	}
}
