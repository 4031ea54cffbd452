// Package session implements the persisted client-side session: the
// bearer token, the cached profile and the cart snapshot. It is the Go
// counterpart of the storefront's browser-local storage, kept under
// fixed key names and always written wholesale.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"sweetshop/config"
	"sweetshop/internal/domain/entity"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// Fixed storage key names. Values under them are overwritten, never
// merged, and all of them are removed together on logout.
const (
	keyToken = "access_token"
	keyUser  = "user"
	keyCart  = "cart"
)

// Store is the concrete Session backed by a local blob bucket.
type Store struct {
	bucket *blob.Bucket
	logger *slog.Logger

	mu        sync.RWMutex
	token     string
	user      *entity.User
	cart      []*entity.CartItem
	listeners []service.AuthListener
}

// NewStore opens (or creates) the state directory and loads any session
// persisted by a previous run.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Storage.StatePath, 0o700); err != nil {
		return nil, errors.Wrap(err, "create state directory")
	}

	bucket, err := fileblob.OpenBucket(cfg.Storage.StatePath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open state bucket")
	}

	store := &Store{
		bucket: bucket,
		logger: logger,
	}

	if err := store.load(context.Background()); err != nil {
		bucket.Close()

		return nil, err
	}

	return store, nil
}

// AsSession exposes the store through the domain interface.
func AsSession(s *Store) service.Session {
	return s
}

// Close releases the underlying bucket.
func (s *Store) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// load restores persisted state; missing keys just mean a fresh session.
func (s *Store) load(ctx context.Context) error {
	token, err := s.readKey(ctx, keyToken)
	if err != nil {
		return err
	}
	s.token = string(token)

	if raw, err := s.readKey(ctx, keyUser); err != nil {
		return err
	} else if len(raw) > 0 {
		var user entity.User
		if jsonErr := json.Unmarshal(raw, &user); jsonErr != nil {
			// A corrupt cache is dropped, not fatal.
			s.logger.Warn("discarding corrupt user cache", slog.Any("error", jsonErr))
		} else {
			s.user = &user
		}
	}

	if raw, err := s.readKey(ctx, keyCart); err != nil {
		return err
	} else if len(raw) > 0 {
		var cart []*entity.CartItem
		if jsonErr := json.Unmarshal(raw, &cart); jsonErr != nil {
			s.logger.Warn("discarding corrupt cart snapshot", slog.Any("error", jsonErr))
		} else {
			s.cart = cart
		}
	}

	return nil
}

func (s *Store) readKey(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "read %s", key)
	}

	return data, nil
}

func (s *Store) writeKey(key string, data []byte) error {
	return errors.Wrapf(s.bucket.WriteAll(context.Background(), key, data, nil), "write %s", key)
}

func (s *Store) deleteKey(key string) error {
	err := s.bucket.Delete(context.Background(), key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// SetToken overwrites the stored token and persists it. Crossing the
// unauthenticated boundary in either direction notifies listeners.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = token

	var err error
	if token == "" {
		err = s.deleteKey(keyToken)
	} else {
		err = s.writeKey(keyToken, []byte(token))
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if !wasAuthenticated && token != "" {
		s.notify(true)
	}
	if wasAuthenticated && token == "" {
		s.notify(false)
	}

	return nil
}

// User returns the cached profile, or nil when none is stored.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

// SetUser overwrites the cached profile and persists it.
func (s *Store) SetUser(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if user == nil {
		return s.deleteKey(keyUser)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshal user")
	}

	return s.writeKey(keyUser, data)
}

// CartSnapshot returns the last persisted cart projection.
func (s *Store) CartSnapshot() []*entity.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart
}

// SetCartSnapshot overwrites the persisted cart projection.
func (s *Store) SetCartSnapshot(items []*entity.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = items
	if len(items) == 0 {
		return s.deleteKey(keyCart)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "marshal cart snapshot")
	}

	return s.writeKey(keyCart, data)
}

// IsAuthenticated reports whether a token is currently stored.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != ""
}

// Clear wipes token, user and cart snapshot together.
func (s *Store) Clear() error {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.user = nil
	s.cart = nil

	err := errors.Join(
		s.deleteKey(keyToken),
		s.deleteKey(keyUser),
		s.deleteKey(keyCart),
	)
	s.mu.Unlock()

	if err != nil {
		return errors.WithStack(err)
	}

	if wasAuthenticated {
		s.notify(false)
	}

	return nil
}

// Subscribe registers a listener for auth-state transitions.
func (s *Store) Subscribe(listener service.AuthListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, listener)
}

// notify calls listeners outside the lock so they may read the session.
func (s *Store) notify(authenticated bool) {
	s.mu.RLock()
	listeners := make([]service.AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(authenticated)
	}
}
