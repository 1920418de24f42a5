package service

import (
	"errors"
	"testing"

	"ivchonotes/cmd/internal/auth"
	"ivchonotes/cmd/internal/session"
)

type fakeAuthenticator struct {
	session    *auth.Session
	signInErr  error
	signOutErr error

	gotIdentifier string
	gotSecret     string
	signOuts      int
}

func (f *fakeAuthenticator) SignIn(identifier, secret string) (*auth.Session, error) {
	f.gotIdentifier = identifier
	f.gotSecret = secret
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthenticator) SignOut() error {
	f.signOuts++
	return f.signOutErr
}

type noSessionBackend struct{}

func (noSessionBackend) Session() (*auth.Session, error) { return nil, nil }

func (noSessionBackend) OnSessionChange(func(*auth.Session)) func() { return func() {} }

func newAuthService(t *testing.T, authn *fakeAuthenticator, sharedEmail string) *DefaultAuthService {
	t.Helper()

	sessions := session.NewStore(noSessionBackend{})
	sessions.Bootstrap()
	return NewAuthService(authn, sessions, newTestValidator(t), func() string {
		return sharedEmail
	})
}

func TestLoginUsesSharedIdentifier(t *testing.T) {
	authn := &fakeAuthenticator{session: &auth.Session{AccessToken: "tok", ExpiresAt: 1755252000000}}
	svc := newAuthService(t, authn, "team@example.com")

	resp, apierr := svc.Login(&LoginRequest{Password: "hunter22"})
	if apierr != nil {
		t.Fatalf("Login() = %v", apierr)
	}

	if authn.gotIdentifier != "team@example.com" {
		t.Errorf("identifier = %q", authn.gotIdentifier)
	}
	if resp.AccessToken != "tok" {
		t.Errorf("AccessToken = %q", resp.AccessToken)
	}
}

func TestLoginMissingSharedEmailIsInlineConfigError(t *testing.T) {
	svc := newAuthService(t, &fakeAuthenticator{}, "")

	_, apierr := svc.Login(&LoginRequest{Password: "hunter22"})
	if apierr == nil {
		t.Fatal("expected configuration error")
	}
	if apierr.Code() != 422 {
		t.Errorf("Code() = %d, want 422", apierr.Code())
	}
}

func TestLoginErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"credentials mismatch", auth.ErrCredentialsMismatch, 401},
		{"user not found", auth.ErrUserNotFound, 401},
		{"backend failure", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(t, &fakeAuthenticator{signInErr: tt.err}, "team@example.com")
			_, apierr := svc.Login(&LoginRequest{Password: "nope"})
			if apierr == nil {
				t.Fatal("expected error")
			}
			if apierr.Code() != tt.wantCode {
				t.Errorf("Code() = %d, want %d", apierr.Code(), tt.wantCode)
			}
		})
	}
}

func TestLoginRequiresPassword(t *testing.T) {
	svc := newAuthService(t, &fakeAuthenticator{}, "team@example.com")
	if _, apierr := svc.Login(&LoginRequest{}); apierr == nil {
		t.Error("expected validation error for empty password")
	}
}

func TestLogoutIsBestEffort(t *testing.T) {
	authn := &fakeAuthenticator{signOutErr: errors.New("idp unreachable")}
	svc := newAuthService(t, authn, "team@example.com")

	svc.Logout()
	if authn.signOuts != 1 {
		t.Errorf("signOuts = %d, want 1", authn.signOuts)
	}
}

func TestGetSessionReflectsStore(t *testing.T) {
	svc := newAuthService(t, &fakeAuthenticator{}, "team@example.com")

	resp := svc.GetSession()
	if resp.Loading {
		t.Error("Loading should be false after bootstrap")
	}
	if resp.Authenticated {
		t.Error("Authenticated should be false with no session")
	}
}
