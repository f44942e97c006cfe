// Package authstate keeps a host surface's view of "is the user logged
// in, and as whom" consistent with the shared session store. Any number
// of controllers may be mounted at once; each re-reads the store on
// attach, on route changes, and on every authorization signal, so all of
// them converge on the store's contents without talking to each other.
package authstate

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"

	"github.com/titanstore/storefront/pkg/alert"
	"github.com/titanstore/storefront/pkg/api"
	"github.com/titanstore/storefront/pkg/session"
)

// Routes the controller navigates to. The surfaces behind them are
// external collaborators.
const (
	loginPath          = "/login"
	signupPath         = "/signup"
	adminDashboardPath = "/admin-dashboard"
	listingPath        = "/homepage"
)

// notAdminMessage is the notice shown when the role gate rejects.
const notAdminMessage = "You are not an admin!"

// ErrNotAdmin indicates the locally cached role failed the admin gate.
// The gate is advisory: the remote API re-authorizes privileged calls.
var ErrNotAdmin = errors.New("not an administrator")

// Controller derives the authenticated flag and the cached identity from
// the session store. It never writes the store except through Logout.
type Controller struct {
	store  session.Store
	bus    *session.Bus
	client *api.Client
	nav    Navigator
	alerts alert.Alerter
	log    *slog.Logger

	mu            sync.Mutex
	authenticated bool
	user          *api.User
	gen           uint64
	sub           *session.Subscription
	done          chan struct{}
}

// NewController creates a controller over the shared store and bus. A nil
// logger falls back to slog.Default.
func NewController(store session.Store, bus *session.Bus, client *api.Client, nav Navigator, alerts alert.Alerter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		bus:    bus,
		client: client,
		nav:    nav,
		alerts: alerts,
		log:    logger,
	}
}

// Recompute re-reads the session store and re-derives the local view.
// The store read completes before any profile fetch is issued, so the
// fetch is conditioned on a just-read token, never a stale one. Calling
// it twice with unchanged store contents yields the same view.
func (c *Controller) Recompute(ctx context.Context) {
	creds, err := c.store.Credentials(ctx)
	if err != nil {
		c.log.Warn("authstate: session store read failed", "error", err)
		creds = session.Credentials{}
	}

	c.mu.Lock()
	c.authenticated = creds.Present()
	if !creds.Present() {
		c.user = nil
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if creds.Present() {
		c.loadProfile(ctx, creds, gen)
	}
}

// OnLocationChange re-runs Recompute. Route changes can reveal a login or
// logout that happened off-screen.
func (c *Controller) OnLocationChange(ctx context.Context) {
	c.Recompute(ctx)
}

// loadProfile fetches the identity for the given credentials. Failures
// degrade to "authenticated but details unknown": the previous identity
// stays in place and nothing reaches the host surface.
func (c *Controller) loadProfile(ctx context.Context, creds session.Credentials, gen uint64) {
	if creds.UserID == "" {
		c.log.Debug("authstate: no user id in session store, skipping profile fetch")
		return
	}

	user, err := c.client.Profile(ctx, creds.Token, creds.UserID)
	if err != nil {
		c.log.Warn("authstate: profile fetch failed", "user_id", creds.UserID, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer recompute, a logout, or a detach superseded this fetch.
		c.log.Debug("authstate: discarding stale profile result", "user_id", creds.UserID)
		return
	}
	c.user = user
}

// Login navigates to the login surface. The surface itself owns writing
// the token and emitting the signal on success.
func (c *Controller) Login() {
	c.nav.NavigateTo(loginPath)
}

// Signup navigates to the signup surface.
func (c *Controller) Signup() {
	c.nav.NavigateTo(signupPath)
}

// Logout clears the session store, flips the local view, and broadcasts
// the authorization signal, in that order and unconditionally, before
// requesting the redirect. Logging out when already logged out is a no-op
// that still signals.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("authstate: clearing session store failed", "error", err)
	}

	c.mu.Lock()
	c.authenticated = false
	c.user = nil
	c.gen++
	c.mu.Unlock()

	c.bus.Notify()
	c.nav.NavigateTo(loginPath)
}

// RequireAdmin gates on the locally cached role. A missing identity or a
// non-administrator role surfaces a notice and fails; it never clears the
// session.
func (c *Controller) RequireAdmin() error {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()

	if user == nil || !user.Role.Admin() {
		c.alerts.Alert(alert.Error, notAdminMessage)
		return ErrNotAdmin
	}
	return nil
}

// OpenAdminDashboard navigates to the admin surface when the gate passes.
func (c *Controller) OpenAdminDashboard() error {
	if err := c.RequireAdmin(); err != nil {
		return err
	}
	c.nav.NavigateTo(adminDashboardPath)
	return nil
}

// Search navigates to the product listing filtered by query.
func (c *Controller) Search(query string) {
	c.nav.NavigateTo(listingPath + "?search=" + url.QueryEscape(query))
}

// Attach subscribes to the authorization signal and computes the initial
// view. Attaching an already attached controller is a no-op. The
// subscription lasts until Detach or ctx cancellation.
func (c *Controller) Attach(ctx context.Context) {
	c.mu.Lock()
	if c.sub != nil {
		c.mu.Unlock()
		return
	}
	sub := c.bus.Subscribe()
	done := make(chan struct{})
	c.sub = sub
	c.done = done
	c.mu.Unlock()

	c.Recompute(ctx)

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				c.Recompute(ctx)
			}
		}
	}()
}

// Detach closes the signal subscription and invalidates in-flight profile
// fetches, so a fetch that resolves after unmount cannot update the view.
func (c *Controller) Detach() {
	c.mu.Lock()
	sub := c.sub
	done := c.done
	c.sub = nil
	c.done = nil
	c.gen++
	c.mu.Unlock()

	if sub == nil {
		return
	}
	sub.Close()
	<-done
}

// Authenticated reports the last computed view of "a token is present".
func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// User returns a copy of the cached identity, or nil when unknown.
func (c *Controller) User() *api.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}
