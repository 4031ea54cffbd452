package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"sweetshop/config"
	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSession is a minimal in-memory service.Session for client tests.
type stubSession struct {
	mu         sync.Mutex
	token      string
	clearCalls int
}

func (s *stubSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

func (s *stubSession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token

	return nil
}

func (s *stubSession) User() *entity.User                       { return nil }
func (s *stubSession) SetUser(*entity.User) error               { return nil }
func (s *stubSession) CartSnapshot() []*entity.CartItem         { return nil }
func (s *stubSession) SetCartSnapshot([]*entity.CartItem) error { return nil }
func (s *stubSession) Subscribe(service.AuthListener)           {}

func (s *stubSession) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token != ""
}

func (s *stubSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clearCalls++

	return nil
}

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{
		Retry: &config.RetryConfig{
			MaxRetries:     2,
			InitialBackoff: time.Millisecond,
		},
	}
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 5 * time.Second

	return cfg
}

func newTestClient(t *testing.T, baseURL, token string, opts ...Option) (*Client, *stubSession) {
	t.Helper()

	session := &stubSession{token: token}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(testConfig(baseURL), session, logger, opts...)
	require.NoError(t, err)

	return client, session
}

func TestClient_Get_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/sweets", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "stored-token")

	var out map[string]string
	require.NoError(t, client.Get(context.Background(), "/sweets", nil, &out))
	assert.Equal(t, "Bearer stored-token", gotAuth)
	assert.Equal(t, "yes", out["ok"])
}

func TestClient_Get_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "")

	require.NoError(t, client.Get(context.Background(), "/sweets", nil, nil))
}

func TestClient_RefreshOnceAndReplay(t *testing.T) {
	var mu sync.Mutex
	var sweetsAuth []string
	refreshCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			assert.Equal(t, "Bearer expired-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "fresh-token"})
		case "/api/sweets":
			sweetsAuth = append(sweetsAuth, r.Header.Get("Authorization"))
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}
			_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "fudge"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, session := newTestClient(t, server.URL, "expired-token")

	var out []map[string]string
	err := client.Get(context.Background(), "/sweets", nil, &out)

	// The caller sees only the successful result.
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fudge", out[0]["name"])

	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, []string{"Bearer expired-token", "Bearer fresh-token"}, sweetsAuth)
	assert.Equal(t, "fresh-token", session.Token())
	assert.Zero(t, session.clearCalls)
}

func TestClient_RefreshFailureForcesLogoutOnce(t *testing.T) {
	var mu sync.Mutex
	sweetsCalls := 0
	refreshCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			w.WriteHeader(http.StatusUnauthorized)
		case "/api/sweets":
			sweetsCalls++
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	authFailures := 0
	client, session := newTestClient(t, server.URL, "dead-token",
		WithAuthFailureHandler(func() { authFailures++ }))

	err := client.Get(context.Background(), "/sweets", nil, nil)

	require.Error(t, err)
	assert.True(t, HasStatus(err, http.StatusUnauthorized))
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshFailed)

	// One original request, one refresh, no replay, no retry storm.
	assert.Equal(t, 1, sweetsCalls)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 1, session.clearCalls)
	assert.Equal(t, 1, authFailures)
	assert.False(t, session.IsAuthenticated())
}

func TestClient_NoRefreshWithoutStoredToken(t *testing.T) {
	var mu sync.Mutex
	refreshCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.URL.Path == "/api/auth/refresh" {
			refreshCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "")

	err := client.Get(context.Background(), "/profile", nil, nil)

	require.Error(t, err)
	assert.True(t, HasStatus(err, http.StatusUnauthorized))
	assert.Zero(t, refreshCalls)
}

func TestClient_ReplayedUnauthorizedIsNotRefreshedAgain(t *testing.T) {
	var mu sync.Mutex
	refreshCalls := 0
	sweetsCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "still-bad"})
		case "/api/sweets":
			sweetsCalls++
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "expired-token")

	err := client.Get(context.Background(), "/sweets", nil, nil)

	require.Error(t, err)
	assert.True(t, HasStatus(err, http.StatusUnauthorized))
	// Exactly one refresh and one replay: the second 401 propagates.
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 2, sweetsCalls)
}

func TestClient_RetriesTransientServerErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "eventually"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "token")

	var out map[string]string
	require.NoError(t, client.Get(context.Background(), "/sweets", nil, &out))
	assert.Equal(t, "eventually", out["ok"])
	assert.Equal(t, 3, calls)
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "token")

	err := client.Get(context.Background(), "/sweets", nil, nil)

	require.Error(t, err)
	assert.True(t, HasStatus(err, http.StatusInternalServerError))
	assert.ErrorIs(t, err, domainerrors.ErrBackendUnavailable)
	// Initial attempt plus MaxRetries re-issues, never more.
	assert.Equal(t, 3, calls)
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no such sweet"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "token")

	err := client.Get(context.Background(), "/sweets/123", nil, nil)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.NotErrorIs(t, err, domainerrors.ErrBackendUnavailable)
	assert.Equal(t, 1, calls)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "no such sweet", apiErr.Message)
}

func TestClient_RetriesNetworkErrors(t *testing.T) {
	// A server that is immediately closed yields connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(t, server.URL, "token")

	start := time.Now()
	err := client.Get(context.Background(), "/sweets", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.ErrorIs(t, err, domainerrors.ErrBackendUnavailable)
	// Two waits: 1ms then 2ms with the test backoff.
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}

func TestClient_CancelledContextStopsRetrying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, _ := newTestClient(t, server.URL, "token")

	err := client.Get(ctx, "/sweets", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BackoffDoubles(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.Retry.InitialBackoff = 300 * time.Millisecond
	client, err := NewClient(cfg, &stubSession{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, client.backoffFor(1))
	assert.Equal(t, 600*time.Millisecond, client.backoffFor(2))
	assert.Equal(t, 1200*time.Millisecond, client.backoffFor(3))
}

func TestClient_DecodesPlainTextIntoString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User registered successfully!"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "")

	var out string
	require.NoError(t, client.Post(context.Background(), "/auth/register", nil, map[string]string{}, &out))
	assert.Equal(t, "User registered successfully!", out)
}

func TestClient_RequiresBaseURL(t *testing.T) {
	cfg := testConfig("")
	_, err := NewClient(cfg, &stubSession{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
}
