package auth

import "errors"

// Session is the authenticated identity handed out by the credential
// exchange. Consumers mostly care about presence; the token and expiry are
// carried for the bearer check and persistence.
type Session struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	ExpiresAt   int64  `json:"expires_at"` // epoch millis
}

var (
	ErrCredentialsMismatch = errors.New("credentials do not match")
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionInvalid      = errors.New("session is no longer valid")
)

// Provider performs the actual credential exchange against whatever identity
// mechanism backs the deployment (local shared secret or AWS Cognito).
type Provider interface {
	Exchange(identifier, secret string) (*Session, error)
	Restore(sess Session) (*Session, error)
	Revoke(accessToken string) error
}
