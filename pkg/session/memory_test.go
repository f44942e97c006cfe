package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	memTestToken      = "tok-abc123"
	memTestUserID     = "u1"
	memTestGoroutines = 10
	memTestIterations = 100
)

func TestMemoryStore_EmptyByDefault(t *testing.T) {
	store := NewMemoryStore()

	creds, err := store.Credentials(context.Background())
	require.NoError(t, err)
	assert.False(t, creds.Present())
	assert.Empty(t, creds.UserID)
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetCredentials(ctx, Credentials{Token: memTestToken, UserID: memTestUserID}))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.True(t, creds.Present())
	assert.Equal(t, memTestToken, creds.Token)
	assert.Equal(t, memTestUserID, creds.UserID)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetCredentials(ctx, Credentials{Token: memTestToken, UserID: memTestUserID}))
	require.NoError(t, store.Clear(ctx))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Present())
}

func TestMemoryStore_ClearWhenEmpty(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	creds, err := store.Credentials(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Present())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < memTestGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < memTestIterations; j++ {
				_ = store.SetCredentials(ctx, Credentials{Token: memTestToken, UserID: memTestUserID})
				_, _ = store.Credentials(ctx)
				_ = store.Clear(ctx)
			}
		}()
	}
	wg.Wait()
}

func TestCredentials_Present(t *testing.T) {
	assert.False(t, Credentials{}.Present())
	assert.False(t, Credentials{UserID: memTestUserID}.Present())
	assert.True(t, Credentials{Token: memTestToken}.Present())
}
