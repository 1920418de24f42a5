package cognitoclient

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type UserLogin struct {
	Email    string
	Password string
}

type AuthCreate struct {
	AccessToken string
	IDToken     string
	ExpiresIn   int32 // seconds
}

type CognitoInterface interface {
	SignIn(user *UserLogin) (*AuthCreate, error)
	GetUser(accessToken string) (string, error)
	GlobalSignOut(accessToken string) error
}

type cognitoClient struct {
	client   *cognitoidentityprovider.Client
	clientID string
}

func InitCognitoClient() (CognitoInterface, error) {
	clientID := os.Getenv("COGNITO_CLIENT_ID")
	if clientID == "" {
		return nil, errors.New("COGNITO_CLIENT_ID is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, err
	}

	return &cognitoClient{
		client:   cognitoidentityprovider.NewFromConfig(cfg),
		clientID: clientID,
	}, nil
}

func (c *cognitoClient) SignIn(user *UserLogin) (*AuthCreate, error) {
	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": user.Email,
			"PASSWORD": user.Password,
		},
	}

	out, err := c.client.InitiateAuth(context.TODO(), input)
	if err != nil {
		return nil, err
	}

	if out.AuthenticationResult == nil {
		return nil, errors.New("authentication produced no result")
	}

	return &AuthCreate{
		AccessToken: aws.ToString(out.AuthenticationResult.AccessToken),
		IDToken:     aws.ToString(out.AuthenticationResult.IdToken),
		ExpiresIn:   out.AuthenticationResult.ExpiresIn,
	}, nil
}

func (c *cognitoClient) GetUser(accessToken string) (string, error) {
	out, err := c.client.GetUser(context.TODO(), &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Username), nil
}

func (c *cognitoClient) GlobalSignOut(accessToken string) error {
	_, err := c.client.GlobalSignOut(context.TODO(), &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	return err
}
