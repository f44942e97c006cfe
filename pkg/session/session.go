// Package session provides the persisted session state shared by every
// storefront component. It defines the Store interface for credential
// persistence and the Bus that tells listeners to re-read the store after
// a login or logout.
package session

import "context"

// Credentials is a snapshot of the persisted session state. The zero value
// is the unauthenticated state.
type Credentials struct {
	// Token is the opaque credential presented to the remote API. The
	// client never inspects it.
	Token string `yaml:"token"`

	// UserID identifies the session owner for profile lookups.
	UserID string `yaml:"user_id"`
}

// Present reports whether a token is stored.
func (c Credentials) Present() bool {
	return c.Token != ""
}

// Store defines the interface for session credential persistence.
// Absent credentials are the zero value, never an error.
type Store interface {
	// Credentials returns the current snapshot.
	Credentials(ctx context.Context) (Credentials, error)

	// SetCredentials replaces the stored snapshot wholesale.
	SetCredentials(ctx context.Context, creds Credentials) error

	// Clear removes any stored credentials. Clearing an already empty
	// store is a no-op.
	Clear(ctx context.Context) error
}
