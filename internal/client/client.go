// Package client is a typed Go consumer of the portfolio HTTP API. It
// carries the bearer token for the session and exposes the auth and
// collection operations the server publishes under /api.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"portfolio-pulse/internal/services/content"
)

var (
	// ErrUnauthenticated is reported when the server rejects the request
	// with 401, including calls made before Login.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNotFound is reported for 404 responses.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the package sentinels so callers
// can branch with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Identity is the token subject reported by the me endpoint.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client talks to one portfolio server. All methods are safe for
// concurrent use; the token set by Login is shared by every call until
// Logout clears it.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client, useful for
// tests and custom transports.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a client for the server at baseURL (scheme and host,
// without the /api prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token of the current session, empty when
// signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken installs a previously obtained token, e.g. one persisted
// across process restarts.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}

// Login authenticates with the server and stores the returned bearer
// token on the client. Wrong credentials surface as ErrUnauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return nil
}

// Logout tells the server the session is over and drops the local
// token. The token itself stays valid until it expires, so dropping it
// client-side is the operative part.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	return err
}

// Me returns the identity encoded in the current token.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// List fetches every document in the named collection. No token needed.
func (c *Client) List(ctx context.Context, collection string) ([]content.Document, error) {
	var docs []content.Document
	if err := c.do(ctx, http.MethodGet, "/api/"+url.PathEscape(collection), nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Create stores a new document and returns it as the server stored it,
// identifier and timestamps included.
func (c *Client) Create(ctx context.Context, collection string, doc content.Document) (content.Document, error) {
	var created content.Document
	if err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(collection), doc, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges fields into the identified document and returns the
// post-update document.
func (c *Client) Update(ctx context.Context, collection, id string, fields content.Document) (content.Document, error) {
	path := "/api/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
	var updated content.Document
	if err := c.do(ctx, http.MethodPut, path, fields, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the identified document. Deleting it twice reports
// ErrNotFound the second time.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	path := "/api/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope struct {
		Message string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	}

	return apiErr
}
