package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fileTestToken  = "tok-file-789"
	fileTestUserID = "u-file"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	store := newTestFileStore(t)

	creds, err := store.Credentials(context.Background())
	require.NoError(t, err)
	assert.False(t, creds.Present())
}

func TestFileStore_SetAndGet(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetCredentials(ctx, Credentials{Token: fileTestToken, UserID: fileTestUserID}))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, fileTestToken, creds.Token)
	assert.Equal(t, fileTestUserID, creds.UserID)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	ctx := context.Background()

	first := NewFileStore(path)
	require.NoError(t, first.SetCredentials(ctx, Credentials{Token: fileTestToken, UserID: fileTestUserID}))

	second := NewFileStore(path)
	creds, err := second.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, fileTestToken, creds.Token)
}

func TestFileStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.yaml")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.SetCredentials(ctx, Credentials{Token: fileTestToken}))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, fileTestToken, creds.Token)
}

func TestFileStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	store := NewFileStore(path)

	require.NoError(t, store.SetCredentials(context.Background(), Credentials{Token: fileTestToken}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(credentialsFilePerms), info.Mode().Perm())
}

func TestFileStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.SetCredentials(ctx, Credentials{Token: fileTestToken}))
	require.NoError(t, store.Clear(ctx))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Present())
}

func TestFileStore_ClearWhenAlreadyAbsent(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\t: not yaml ["), credentialsFilePerms))

	store := NewFileStore(path)
	_, err := store.Credentials(context.Background())
	assert.Error(t, err)
}
