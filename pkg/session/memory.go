package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store with in-process state. It is the default
// for tests and for hosts that do not want credentials on disk.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Credentials returns the current snapshot.
func (s *MemoryStore) Credentials(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creds, nil
}

// SetCredentials replaces the stored snapshot wholesale.
func (s *MemoryStore) SetCredentials(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = creds
	return nil
}

// Clear removes any stored credentials.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	return nil
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
