// Package api implements the HTTP client for the Sweet Shop backend.
// Every outbound request is authenticated with the session's bearer
// token and shielded from two failure classes: expired credentials
// (refresh once, replay once) and transient server failures (bounded
// retry with doubling backoff). Callers never see either recovery.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"sweetshop/config"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/errors"
)

// refreshPath is exempt from the interceptor: a failing refresh call
// must never trigger another refresh.
const refreshPath = "/api/auth/refresh"

// Client is the shared HTTP client for all backend gateways.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        service.Session
	logger         *slog.Logger
	maxRetries     int
	initialBackoff time.Duration

	// refreshMu serializes refresh attempts so that concurrent requests
	// hitting 401 at the same time do not stampede the refresh endpoint.
	refreshMu sync.Mutex

	// onAuthFailure is invoked after an irrecoverable refresh failure,
	// once the local session has been cleared. The delivery layer uses
	// it to route the user back to the login entry point.
	onAuthFailure func()
}

// Option customizes a Client.
type Option func(*Client)

// WithAuthFailureHandler sets the hook invoked after a forced logout.
func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) {
		c.onAuthFailure = fn
	}
}

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config, session service.Session, logger *slog.Logger, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.API.BaseURL, "/")
	if base == "" {
		return nil, errors.New("api base URL must be provided")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, errors.Wrap(err, "invalid api base URL")
	}

	client := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		session:        session,
		logger:         logger,
		maxRetries:     cfg.Retry.MaxRetries,
		initialBackoff: cfg.Retry.InitialBackoff,
		onAuthFailure:  func() {},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do runs one logical request through the full interceptor policy as an
// explicit bounded loop. Attempt state (refresh tried, retry count) is
// scoped to this call and discarded with it, so one caller's recovery
// can never leak into another request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		payload = data
	}

	refreshAttempted := false
	retryCount := 0
	token := c.session.Token()

	for {
		resp, err := c.send(ctx, method, path, query, payload, token)
		if err != nil {
			// Context errors are not transient; give up immediately.
			if ctx.Err() != nil {
				return errors.WithStack(ctx.Err())
			}
			if retryCount < c.maxRetries {
				retryCount++
				c.logger.Warn("request failed, retrying",
					slog.String("method", method),
					slog.String("path", path),
					slog.Int("attempt", retryCount),
					slog.Any("error", err),
				)
				if waitErr := c.wait(ctx, c.backoffFor(retryCount)); waitErr != nil {
					return waitErr
				}

				continue
			}

			return errors.Wrapf(errors.Join(domainerrors.ErrBackendUnavailable, err),
				"%s %s failed after %d attempts", method, path, retryCount+1)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return errors.Wrap(readErr, "read response body")
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeInto(respBody, out)
		}

		apiErr := newAPIError(resp.StatusCode, respBody)

		if resp.StatusCode == http.StatusUnauthorized && !refreshAttempted {
			// At most one refresh per original request.
			refreshAttempted = true
			if c.refresh(ctx) {
				token = c.session.Token()

				continue
			}

			// Refresh failure is fatal to the session.
			c.forceLogout()

			return errors.Wrapf(errors.Join(domainerrors.ErrSessionExpired, domainerrors.ErrRefreshFailed, apiErr),
				"%s %s unauthorized and session could not be renewed", method, path)
		}

		if apiErr.Transient() && retryCount < c.maxRetries {
			retryCount++
			c.logger.Warn("transient server error, retrying",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", retryCount),
			)
			if waitErr := c.wait(ctx, c.backoffFor(retryCount)); waitErr != nil {
				return waitErr
			}

			continue
		}

		if apiErr.Transient() {
			// Retries exhausted on a server-side failure.
			return errors.Wrapf(errors.Join(domainerrors.ErrBackendUnavailable, apiErr), "%s %s", method, path)
		}

		return errors.Wrapf(apiErr, "%s %s", method, path)
	}
}

// send builds and dispatches a single HTTP attempt.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	endpoint := c.baseURL + "/api" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return resp, nil
}

// refreshResponse is the body of a successful token refresh.
type refreshResponse struct {
	Token string `json:"token"`
}

// refresh exchanges the current (possibly expired) token for a fresh
// one. It talks to the refresh endpoint directly, outside the
// interceptor, so it can neither retry nor recurse. Reports success;
// failures are logged, never raised.
func (c *Client) refresh(ctx context.Context) bool {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.session.Token()
	if current == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, nil)
	if err != nil {
		c.logger.Error("build refresh request failed", slog.Any("error", err))

		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+current)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("token refresh failed", slog.Any("error", err))

		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("token refresh rejected", slog.Int("status", resp.StatusCode))

		return false
	}

	var refreshed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil || refreshed.Token == "" {
		c.logger.Error("token refresh returned malformed body", slog.Any("error", err))

		return false
	}

	if err := c.session.SetToken(refreshed.Token); err != nil {
		c.logger.Error("store refreshed token failed", slog.Any("error", err))

		return false
	}

	c.logger.Debug("bearer token refreshed")

	return true
}

// forceLogout wipes all local session state and signals the delivery
// layer to route back to login.
func (c *Client) forceLogout() {
	c.logger.Warn("session could not be renewed, signing out")
	if err := c.session.Clear(); err != nil {
		c.logger.Error("clear session failed", slog.Any("error", err))
	}
	c.onAuthFailure()
}

// backoffFor returns the delay before the given retry: the initial
// backoff doubled for each retry after the first (300ms, 600ms, ...).
func (c *Client) backoffFor(retryCount int) time.Duration {
	return c.initialBackoff << (retryCount - 1)
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-timer.C:
		return nil
	}
}

// decodeInto decodes a JSON response body into out. A nil out discards
// the body; text bodies such as "User registered successfully!" are
// only decoded when the caller asked for a string.
func decodeInto(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}

	if s, ok := out.(*string); ok && !json.Valid(body) {
		*s = string(body)

		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response body")
	}

	return nil
}
