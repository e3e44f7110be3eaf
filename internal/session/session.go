// Package session exposes the signed-in identity as an explicit capability.
// Consumers receive a Provider and never reach for process-wide state.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/pingo/internal/domain"
)

type Provider interface {
	// CurrentUser returns nil for anonymous or expired sessions.
	CurrentUser() *domain.User
	SignOut(ctx context.Context) error
}

type Revoker interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Session struct {
	mu        sync.Mutex
	user      *domain.User
	tokenID   string
	expiresAt time.Time
	revoker   Revoker
	now       func() time.Time
}

func Anonymous() *Session {
	return &Session{now: time.Now}
}

// ForUser builds a session that never expires and is not backed by a token.
func ForUser(user domain.User) *Session {
	return &Session{user: &user, now: time.Now}
}

func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.user = nil
		return nil
	}
	u := *s.user
	return &u
}

// SignOut drops the identity locally and revokes the backing token for the
// rest of its lifetime. The session is anonymous afterwards even if revocation fails.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	s.user = nil

	if s.revoker == nil || s.tokenID == "" {
		return nil
	}
	ttl := s.expiresAt.Sub(s.now())
	if err := s.revoker.RevokeToken(ctx, s.tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns an anonymous session when none was attached.
func FromContext(ctx context.Context) Provider {
	if p, ok := ctx.Value(ctxKey{}).(Provider); ok && p != nil {
		return p
	}
	return Anonymous()
}

var _ Provider = (*Session)(nil)
