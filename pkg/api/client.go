// Package api implements the typed client for the Titan Store remote API.
// It owns the wire contract only: URI shapes, JSON bodies, and the bearer
// credential header. Session state and retry policy live with the callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/yosida95/uritemplate/v3"
)

// DefaultBaseURL is the remote API address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// Endpoint URI patterns.
const (
	profileTemplateURI = "/users/profile/{userId}"
	registerProductURI = "/products/register"
)

// requestIDHeader carries a per-request correlation id for log matching.
const requestIDHeader = "X-Request-Id"

var profileTemplate = uritemplate.MustNew(profileTemplateURI)

// Client is a typed HTTP client for the remote API.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient creates a client for the API at baseURL. A nil httpc falls
// back to http.DefaultClient; a nil logger falls back to slog.Default.
func NewClient(baseURL string, httpc *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		log:     logger,
	}
}

// Profile fetches the profile of the user identified by userID. The bearer
// header is attached when token is non-empty. Any non-200 status is
// returned as a *StatusError.
func (c *Client) Profile(ctx context.Context, token, userID string) (*User, error) {
	path, err := profileTemplate.Expand(uritemplate.Values{
		"userId": uritemplate.String(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("expanding profile URI: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return nil, err
	}

	data, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &user, nil
}

// CreateProduct registers a new product as one atomic authenticated write.
// Success is a 201; anything else is returned as an error. A 201 with a
// body the client cannot parse still counts as success, with a nil Product.
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (*Product, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding product: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, registerProductURI, bytes.NewReader(body), token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.log.Debug("api: created, response body not understood", "error", err)
		return nil, nil
	}
	return &product, nil
}

// newRequest builds a request with the correlation id and optional bearer
// credential attached.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do issues the request and returns the body on the wanted status, or a
// *StatusError on any other status.
func (c *Client) do(req *http.Request, wantStatus int) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("api: request complete",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader))

	if resp.StatusCode != wantStatus {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
