package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// credentialsFilePerms keeps the token readable by the owning user only.
const credentialsFilePerms = 0o600

// FileStore implements Store against a small YAML document on disk, so a
// session outlives the process the way a browser session outlives a tab.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed session store at path. The file is
// created on the first SetCredentials; a missing file reads as the
// unauthenticated state.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Credentials returns the stored snapshot, or the zero value when the
// file does not exist yet.
func (s *FileStore) Credentials(_ context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("reading session file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parsing session file: %w", err)
	}
	return creds, nil
}

// SetCredentials replaces the stored snapshot wholesale.
func (s *FileStore) SetCredentials(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding session file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, credentialsFilePerms); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an already absent file is a no-op.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ Store = (*FileStore)(nil)
