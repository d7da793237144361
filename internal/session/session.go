package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Persisted keys.
const (
	KeyAdminSession = "admin_session"
	KeyAdminToken   = "admin_token"
)

// Status is a snapshot of the cached admin session.
type Status struct {
	IsAuthenticated bool `json:"is_authenticated"`
	HasPersisted    bool `json:"has_persisted"`
}

// Session caches whether an admin is logged in. The flag is advisory: it
// saves a round-trip but never authorizes anything. The backend re-checks
// the cookie or token on every protected call.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	store         Store
	logger        zerolog.Logger
	now           func() time.Time
}

// New creates a session backed by store. It starts unauthenticated.
func New(store Store, logger zerolog.Logger) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
		now:    time.Now,
	}
}

// SetAuthenticated updates the in-memory flag and mirrors it to the store.
func (s *Session) SetAuthenticated(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	s.authenticated = authenticated
	s.mu.Unlock()

	if authenticated {
		if err := s.store.Set(ctx, KeyAdminSession, "true"); err != nil {
			return fmt.Errorf("failed to persist admin session: %w", err)
		}
		return nil
	}

	if err := s.store.Delete(ctx, KeyAdminSession); err != nil {
		return fmt.Errorf("failed to remove admin session: %w", err)
	}
	return nil
}

// IsLoggedIn returns the in-memory flag when set, otherwise the persisted
// flag. A persisted flag whose bearer token has expired is stale.
func (s *Session) IsLoggedIn(ctx context.Context) bool {
	s.mu.RLock()
	authenticated := s.authenticated
	s.mu.RUnlock()

	if authenticated {
		return true
	}

	v, ok, err := s.store.Get(ctx, KeyAdminSession)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read persisted session")
		return false
	}
	if !ok || v != "true" {
		return false
	}

	if token := s.Token(ctx); token != "" && tokenExpired(token, s.now()) {
		s.logger.Debug().Msg("persisted session token has expired")
		return false
	}

	return true
}

// ClearSession drops the flag and the stored token.
func (s *Session) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()

	var firstErr error
	for _, key := range []string{KeyAdminSession, KeyAdminToken} {
		if err := s.store.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return firstErr
}

// Status reports IsLoggedIn and whether a flag is persisted.
func (s *Session) Status(ctx context.Context) Status {
	authenticated := s.IsLoggedIn(ctx)

	v, ok, err := s.store.Get(ctx, KeyAdminSession)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read persisted session")
	}

	return Status{
		IsAuthenticated: authenticated,
		HasPersisted:    ok && v == "true",
	}
}

// SetToken stores the admin bearer token. An empty token removes it.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		if err := s.store.Delete(ctx, KeyAdminToken); err != nil {
			return fmt.Errorf("failed to remove admin token: %w", err)
		}
		return nil
	}
	if err := s.store.Set(ctx, KeyAdminToken, token); err != nil {
		return fmt.Errorf("failed to persist admin token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Session) Token(ctx context.Context) string {
	token, ok, err := s.store.Get(ctx, KeyAdminToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read admin token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// tokenExpired reports whether token is a JWT whose exp claim is in the
// past. The signature is not checked; opaque tokens never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
