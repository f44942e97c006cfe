package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/titanstore/storefront/pkg/alert"
	"github.com/titanstore/storefront/pkg/api"
	"github.com/titanstore/storefront/pkg/session"
)

// User-visible outcome notices.
const (
	createdMessage      = "Product created successfully"
	createFailedMessage = "Error creating product"
)

// ErrWorkflowClosed indicates an operation on a workflow that already
// finished, by success or cancellation. In particular, a second Submit
// after a success is prevented rather than creating a second resource.
var ErrWorkflowClosed = errors.New("creation workflow closed")

// RefreshFunc re-synchronizes the caller's product listing after a
// successful creation. It is invoked exactly once per created product.
type RefreshFunc func()

// Workflow collects a new product's fields and submits them as one
// atomic authenticated create request. It is single-shot: it opens with
// an empty draft and closes on success or Cancel, discarding the draft.
type Workflow struct {
	store   session.Store
	client  *api.Client
	refresh RefreshFunc
	alerts  alert.Alerter
	log     *slog.Logger

	mu     sync.Mutex
	draft  Draft
	closed bool
}

// New opens a creation workflow with an empty draft. A nil logger falls
// back to slog.Default; a nil alerts falls back to alert.Discard.
func New(store session.Store, client *api.Client, refresh RefreshFunc, alerts alert.Alerter, logger *slog.Logger) *Workflow {
	if alerts == nil {
		alerts = alert.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		store:   store,
		client:  client,
		refresh: refresh,
		alerts:  alerts,
		log:     logger,
	}
}

// UpdateField applies user input to one draft field.
func (w *Workflow) UpdateField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWorkflowClosed
	}
	w.draft.update(field, value)
	return nil
}

// Draft returns a copy of the current draft for the host UI.
func (w *Workflow) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

// Closed reports whether the workflow has finished.
func (w *Workflow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Submit builds the create request from the current draft, attaches the
// current session token, and issues exactly one network call. A missing
// token is not pre-validated here; the remote API is the final authority
// and rejects with an auth error. On success the refresh callback runs
// once and the workflow closes. On any failure a notice is surfaced and
// the draft and workflow stay open for correction and retry; there is no
// automatic retry.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWorkflowClosed
	}
	draft := w.draft.clone()
	w.mu.Unlock()

	creds, err := w.store.Credentials(ctx)
	if err != nil {
		w.log.Warn("product: session store read failed", "error", err)
		w.alerts.Alert(alert.Error, createFailedMessage)
		return fmt.Errorf("reading session store: %w", err)
	}

	if _, err := w.client.CreateProduct(ctx, creds.Token, draft.input()); err != nil {
		w.log.Warn("product: creation failed", "error", err)
		w.alerts.Alert(alert.Error, createFailedMessage)
		return fmt.Errorf("creating product: %w", err)
	}

	w.alerts.Alert(alert.Success, createdMessage)
	if w.refresh != nil {
		w.refresh()
	}

	w.mu.Lock()
	w.closed = true
	w.draft = Draft{}
	w.mu.Unlock()
	return nil
}

// Cancel discards the draft and closes the workflow without a network
// call.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWorkflowClosed
	}
	w.closed = true
	w.draft = Draft{}
	return nil
}
