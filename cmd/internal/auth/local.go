package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider verifies the shared login secret against a bcrypt hash and
// issues HS256 session tokens. It is the default provider when no Cognito
// client is configured.
type LocalProvider struct {
	Secret       []byte
	PasswordHash []byte
	TTL          time.Duration
	Now          func() time.Time
}

func NewLocalProvider(secret, passwordHash string, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		Secret:       []byte(secret),
		PasswordHash: []byte(passwordHash),
		TTL:          ttl,
		Now:          time.Now,
	}
}

func (p *LocalProvider) Exchange(identifier, secret string) (*Session, error) {
	if len(p.PasswordHash) == 0 {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(secret)); err != nil {
		return nil, ErrCredentialsMismatch
	}

	now := p.Now().UTC()
	expires := now.Add(p.TTL)

	claims := jwt.RegisteredClaims{
		Subject:   identifier,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{
		AccessToken: token,
		Email:       identifier,
		ExpiresAt:   expires.UnixMilli(),
	}, nil
}

// Restore rebuilds a session from a persisted token, rejecting bad
// signatures and expired claims.
func (p *LocalProvider) Restore(sess Session) (*Session, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(sess.AccessToken, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return p.Now().UTC() }))

	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	restored := Session{
		AccessToken: sess.AccessToken,
		Email:       claims.Subject,
		ExpiresAt:   sess.ExpiresAt,
	}
	if claims.ExpiresAt != nil {
		restored.ExpiresAt = claims.ExpiresAt.UnixMilli()
	}
	return &restored, nil
}

func (p *LocalProvider) Revoke(string) error {
	// Stateless tokens have nothing to revoke server-side.
	return nil
}
