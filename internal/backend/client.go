// Package backend is the HTTP client for the remote storefront API. All
// business logic (pricing, stock, order transitions, authentication) lives
// behind these endpoints; this package only shapes requests and decodes
// responses.
package backend

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
	"time"
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 backend response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Auth is the token pair bound to a request chain. OnRefresh is called
// with the new access token after a successful refresh so the caller can
// persist it.
type Auth struct {
	Access    string
	Refresh   string
	OnRefresh func(ctx context.Context, access string)
}

// CallFunc observes one backend round trip, for metrics.
type CallFunc func(ctx context.Context, method, path string, status int, duration time.Duration)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	auth    *Auth
	onCall  CallFunc
}

// New creates a backend client for the given base URL (e.g.
// "http://localhost:8000/api").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// OnCall registers an observer for backend round trips.
func (c *Client) OnCall(fn CallFunc) {
	c.onCall = fn
}

// WithAuth returns a copy of the client that attaches the bearer token to
// every request and performs the single refresh-and-retry on 401.
func (c *Client) WithAuth(auth *Auth) *Client {
	bound := *c
	bound.auth = auth
	return &bound
}

// do performs one API call. On a 401 with a bound refresh token it
// refreshes the access token and retries the original request exactly
// once; every other failure propagates to the caller unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	err := c.roundTrip(ctx, method, path, query, payload, out)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}
	if c.auth == nil || c.auth.Refresh == "" {
		return err
	}

	access, refreshErr := c.RefreshAccess(ctx, c.auth.Refresh)
	if refreshErr != nil {
		// Propagate the original 401, not the refresh failure.
		return err
	}
	c.auth.Access = access
	if c.auth.OnRefresh != nil {
		c.auth.OnRefresh(ctx, access)
	}

	return c.roundTrip(ctx, method, path, query, payload, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil && c.auth.Access != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth.Access)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.onCall != nil {
			c.onCall(ctx, method, path, 0, time.Since(start))
		}
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if c.onCall != nil {
		c.onCall(ctx, method, path, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's error message from a failed response.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Detail != "":
			apiErr.Message = body.Detail
		}
	}
	return apiErr
}
