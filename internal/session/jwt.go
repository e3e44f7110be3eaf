package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the access tokens minted by the identity backend: the user id
// travels in "sub" next to the user's email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 access tokens. It never issues them; sign-in
// happens against the identity backend.
type Authenticator struct {
	secret  []byte
	issuer  string
	revoker Revoker
	now     func() time.Time
}

type Option func(*Authenticator)

func WithIssuer(issuer string) Option {
	return func(a *Authenticator) {
		a.issuer = issuer
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

func NewAuthenticator(secret string, revoker Revoker, opts ...Option) *Authenticator {
	a := &Authenticator{
		secret:  []byte(secret),
		revoker: revoker,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate turns a raw token into a session. Missing, invalid, expired or
// revoked tokens all yield an anonymous session.
func (a *Authenticator) Authenticate(ctx context.Context, token string) *Session {
	if token == "" {
		return a.anonymous()
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, parserOpts...)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		logging.FromContext(ctx).WithError(err).Debug("rejected session token")
		return a.anonymous()
	}

	tokenID := claims.ID
	if tokenID == "" {
		sum := sha256.Sum256([]byte(token))
		tokenID = hex.EncodeToString(sum[:])
	}

	if a.revoker != nil {
		revoked, err := a.revoker.IsRevoked(ctx, tokenID)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Warn("could not check token revocation")
			return a.anonymous()
		}
		if revoked {
			return a.anonymous()
		}
	}

	return &Session{
		user:      &domain.User{ID: claims.Subject, Email: claims.Email},
		tokenID:   tokenID,
		expiresAt: claims.ExpiresAt.Time,
		revoker:   a.revoker,
		now:       a.now,
	}
}

func (a *Authenticator) anonymous() *Session {
	return &Session{now: a.now}
}
