package storefront

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titanstore/storefront/internal/apitest"
	"github.com/titanstore/storefront/pkg/alert"
	"github.com/titanstore/storefront/pkg/api"
	"github.com/titanstore/storefront/pkg/product"
	"github.com/titanstore/storefront/pkg/session"
)

const (
	sfTestToken  = "tok-sf"
	sfTestUserID = "u1"
	sfTestWait   = 2 * time.Second
	sfTestTick   = 10 * time.Millisecond
)

type stubNav struct{}

func (stubNav) NavigateTo(string) {}

func TestNew_Defaults(t *testing.T) {
	sf, err := New()
	require.NoError(t, err)
	defer sf.Close()

	assert.NotNil(t, sf.Store())
	assert.NotNil(t, sf.Bus())
	assert.NotNil(t, sf.API())
	assert.IsType(t, &session.MemoryStore{}, sf.Store())
}

func TestNew_FileStoreFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.Store = StoreFile
	cfg.Session.Path = filepath.Join(t.TempDir(), "session.yaml")

	sf, err := New(WithConfig(cfg))
	require.NoError(t, err)
	defer sf.Close()

	assert.IsType(t, &session.FileStore{}, sf.Store())
}

func TestNew_InvalidConfigRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.Store = "redis"

	_, err := New(WithConfig(cfg))
	assert.Error(t, err)
}

func TestNew_SuppliedCollaboratorsKept(t *testing.T) {
	store := session.NewMemoryStore()
	bus := session.NewBus()
	defer bus.Close()
	httpc := &http.Client{Timeout: time.Second}

	sf, err := New(WithStore(store), WithBus(bus), WithHTTPClient(httpc))
	require.NoError(t, err)
	defer sf.Close()

	assert.Same(t, store, sf.Store())
	assert.Same(t, bus, sf.Bus())
}

func TestCompleteLogin_WriteThenSignal(t *testing.T) {
	sf, err := New()
	require.NoError(t, err)
	defer sf.Close()

	sub := sf.Bus().Subscribe()
	defer sub.Close()

	ctx := context.Background()
	require.NoError(t, sf.CompleteLogin(ctx, sfTestToken, sfTestUserID))

	select {
	case <-sub.C:
	case <-time.After(sfTestWait):
		t.Fatal("login must emit the authorization signal")
	}

	// The write precedes the signal: a listener reacting to the signal
	// re-reads the store and must see the credentials.
	creds, err := sf.Store().Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, sfTestToken, creds.Token)
	assert.Equal(t, sfTestUserID, creds.UserID)
}

func TestStorefront_LoginLogoutRoundTrip(t *testing.T) {
	server := apitest.NewServer()
	defer server.Close()
	server.AddUser(api.User{ID: sfTestUserID, Username: "ada", Role: api.RoleAdministrator})
	server.AddToken(sfTestToken)

	cfg := DefaultConfig()
	cfg.API.BaseURL = server.URL

	sf, err := New(WithConfig(cfg))
	require.NoError(t, err)
	defer sf.Close()

	ctrl := sf.NewAuthController(stubNav{}, alert.Discard)
	ctx := context.Background()
	ctrl.Attach(ctx)
	defer ctrl.Detach()

	require.False(t, ctrl.Authenticated())

	require.NoError(t, sf.CompleteLogin(ctx, sfTestToken, sfTestUserID))
	require.Eventually(t, func() bool {
		return ctrl.Authenticated() && ctrl.User() != nil
	}, sfTestWait, sfTestTick)
	assert.Equal(t, "ada", ctrl.User().Username)

	ctrl.Logout(ctx)
	creds, err := sf.Store().Credentials(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Present())
}

func TestStorefront_WorkflowUsesSharedSession(t *testing.T) {
	server := apitest.NewServer()
	defer server.Close()
	server.AddToken(sfTestToken)

	cfg := DefaultConfig()
	cfg.API.BaseURL = server.URL

	sf, err := New(WithConfig(cfg))
	require.NoError(t, err)
	defer sf.Close()

	ctx := context.Background()
	require.NoError(t, sf.CompleteLogin(ctx, sfTestToken, sfTestUserID))

	refreshed := 0
	wf := sf.NewProductWorkflow(func() { refreshed++ }, alert.Discard)
	require.NoError(t, wf.UpdateField(product.FieldName, "Widget"))
	require.NoError(t, wf.UpdateField(product.FieldPrice, "9.99"))

	require.NoError(t, wf.Submit(ctx))
	assert.Equal(t, 1, refreshed)
	require.Len(t, server.Products(), 1)
	assert.Equal(t, "Widget", server.Products()[0].Name)
}
