package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"ivchonotes/cmd/internal/auth"
	"ivchonotes/cmd/internal/session"
	"ivchonotes/cmd/internal/utils"
	"ivchonotes/cmd/internal/utils/apierror"
)

type Authenticator interface {
	SignIn(identifier, secret string) (*auth.Session, error)
	SignOut() error
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
	Loading       bool `json:"loading"`
}

// DefaultAuthService performs the shared-login credential exchange. The
// shared identifier is resolved from the environment at sign-in time, so a
// missing value is an inline error on the affected request rather than a
// startup failure.
type DefaultAuthService struct {
	Auth        Authenticator
	Sessions    *session.Store
	Validate    *validator.Validate
	SharedEmail func() string
}

func NewAuthService(authClient Authenticator, sessions *session.Store, validate *validator.Validate, sharedEmail func() string) *DefaultAuthService {
	return &DefaultAuthService{
		Auth:        authClient,
		Sessions:    sessions,
		Validate:    validate,
		SharedEmail: sharedEmail,
	}
}

func (a *DefaultAuthService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	email := a.SharedEmail()
	if email == "" {
		return nil, apierror.MissingSharedLoginError
	}

	sess, err := a.Auth.SignIn(email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCredentialsMismatch):
			return nil, apierror.IDPCredentialsMismatchError
		case errors.Is(err, auth.ErrUserNotFound):
			return nil, apierror.IDPUserNotFoundError
		default:
			log.Errorf("failed to sign in shared login: %v", err)
			return nil, apierror.InternalServerError
		}
	}

	return &LoginResponse{
		AccessToken: sess.AccessToken,
		ExpiresAt:   utils.FormatEpoch(sess.ExpiresAt),
	}, nil
}

// Logout signs out best-effort: failures are logged, never surfaced.
func (a *DefaultAuthService) Logout() {
	if err := a.Auth.SignOut(); err != nil {
		log.Errorf("failed to sign out: %v", err)
	}
}

func (a *DefaultAuthService) GetSession() *SessionResponse {
	return &SessionResponse{
		Authenticated: a.Sessions.Authenticated(),
		Loading:       a.Sessions.Loading(),
	}
}
