package auth

import (
	"errors"
	"time"

	"github.com/aws/smithy-go"
	"github.com/labstack/gommon/log"

	cognitoclient "ivchonotes/cmd/internal/integration/aws/cognito"
)

// CognitoProvider delegates the credential exchange to a hosted AWS Cognito
// user pool.
type CognitoProvider struct {
	Client cognitoclient.CognitoInterface
	Now    func() time.Time
}

func NewCognitoProvider(client cognitoclient.CognitoInterface) *CognitoProvider {
	return &CognitoProvider{Client: client, Now: time.Now}
}

func (p *CognitoProvider) Exchange(identifier, secret string) (*Session, error) {
	creds := &cognitoclient.UserLogin{Email: identifier, Password: secret}

	result, err := p.Client.SignIn(creds)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "UserNotFoundException":
				return nil, ErrUserNotFound
			case "NotAuthorizedException":
				return nil, ErrCredentialsMismatch
			default:
				log.Errorf("signin failed for user (%s): %s - %s", identifier, apiErr.ErrorCode(), apiErr.ErrorMessage())
				return nil, err
			}
		}
		log.Errorf("failed to signin user (%s): %v", identifier, err)
		return nil, err
	}

	expires := p.Now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second)
	return &Session{
		AccessToken: result.AccessToken,
		Email:       identifier,
		ExpiresAt:   expires.UnixMilli(),
	}, nil
}

func (p *CognitoProvider) Restore(sess Session) (*Session, error) {
	if _, err := p.Client.GetUser(sess.AccessToken); err != nil {
		return nil, ErrSessionInvalid
	}
	restored := sess
	return &restored, nil
}

func (p *CognitoProvider) Revoke(accessToken string) error {
	return p.Client.GlobalSignOut(accessToken)
}
