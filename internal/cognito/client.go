// Package cognito wraps the AWS Cognito user pool that acts as the external
// identity provider. Every provider failure leaving this package carries
// exactly one classified ErrorReason.
package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	idp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/pinktech/kounty-api/internal/config"
	"github.com/pinktech/kounty-api/internal/domain"
)

// Client defines user authentication against the identity provider.
type Client interface {
	SignIn(ctx context.Context, username, password string) (*domain.SessionToken, error)
	SignUp(ctx context.Context, username, password, firstName, lastName string) error
	ConfirmSignUp(ctx context.Context, username, confirmationCode string) error
	ForgotPassword(ctx context.Context, username string) error
	ConfirmForgotPassword(ctx context.Context, username, newPassword, confirmationCode string) error
	Decode(ctx context.Context, accessToken string) (*domain.AccessTokenPayload, error)
}

type identityProviderAPI interface {
	InitiateAuth(ctx context.Context, params *idp.InitiateAuthInput, optFns ...func(*idp.Options)) (*idp.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *idp.SignUpInput, optFns ...func(*idp.Options)) (*idp.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *idp.ConfirmSignUpInput, optFns ...func(*idp.Options)) (*idp.ConfirmSignUpOutput, error)
	ForgotPassword(ctx context.Context, params *idp.ForgotPasswordInput, optFns ...func(*idp.Options)) (*idp.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *idp.ConfirmForgotPasswordInput, optFns ...func(*idp.Options)) (*idp.ConfirmForgotPasswordOutput, error)
}

// client talks to a Cognito user pool through the AWS SDK.
type client struct {
	api          identityProviderAPI
	decoder      *TokenDecoder
	clientID     string
	clientSecret string
}

// NewClient builds a Client for the configured user pool. The decoder keeps a
// background JWKS refresh goroutine alive until ctx is cancelled.
func NewClient(ctx context.Context, cfg config.CognitoConfig) (Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	decoder, err := NewTokenDecoder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &client{
		api:          idp.NewFromConfig(awsCfg),
		decoder:      decoder,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

// SignIn authenticates username/password and returns the issued token set.
func (c *client) SignIn(ctx context.Context, username, password string) (*domain.SessionToken, error) {
	params := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if c.clientSecret != "" {
		params["SECRET_HASH"] = c.secretHash(username)
	}

	out, err := c.api.InitiateAuth(ctx, &idp.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       &c.clientID,
		AuthParameters: params,
	})
	if err != nil {
		return nil, classify(err)
	}

	result := out.AuthenticationResult
	if result == nil {
		// Challenge responses (MFA, forced password change) are not supported.
		return nil, newError(ReasonSignInFailed, nil)
	}
	return sessionTokenFromResult(result)
}

// SignUp registers a new account with the provider.
func (c *client) SignUp(ctx context.Context, username, password, firstName, lastName string) error {
	input := &idp.SignUpInput{
		ClientId: &c.clientID,
		Username: &username,
		Password: &password,
		UserAttributes: []types.AttributeType{
			{Name: strptr("given_name"), Value: &firstName},
			{Name: strptr("family_name"), Value: &lastName},
		},
	}
	if c.clientSecret != "" {
		hash := c.secretHash(username)
		input.SecretHash = &hash
	}

	if _, err := c.api.SignUp(ctx, input); err != nil {
		return classify(err)
	}
	return nil
}

// ConfirmSignUp confirms a registration with the emailed code.
func (c *client) ConfirmSignUp(ctx context.Context, username, confirmationCode string) error {
	input := &idp.ConfirmSignUpInput{
		ClientId:         &c.clientID,
		Username:         &username,
		ConfirmationCode: &confirmationCode,
	}
	if c.clientSecret != "" {
		hash := c.secretHash(username)
		input.SecretHash = &hash
	}

	if _, err := c.api.ConfirmSignUp(ctx, input); err != nil {
		return classify(err)
	}
	return nil
}

// ForgotPassword asks the provider to send a recovery code.
func (c *client) ForgotPassword(ctx context.Context, username string) error {
	input := &idp.ForgotPasswordInput{
		ClientId: &c.clientID,
		Username: &username,
	}
	if c.clientSecret != "" {
		hash := c.secretHash(username)
		input.SecretHash = &hash
	}

	if _, err := c.api.ForgotPassword(ctx, input); err != nil {
		return classify(err)
	}
	return nil
}

// ConfirmForgotPassword sets a new password using the recovery code.
func (c *client) ConfirmForgotPassword(ctx context.Context, username, newPassword, confirmationCode string) error {
	input := &idp.ConfirmForgotPasswordInput{
		ClientId:         &c.clientID,
		Username:         &username,
		Password:         &newPassword,
		ConfirmationCode: &confirmationCode,
	}
	if c.clientSecret != "" {
		hash := c.secretHash(username)
		input.SecretHash = &hash
	}

	if _, err := c.api.ConfirmForgotPassword(ctx, input); err != nil {
		return classify(err)
	}
	return nil
}

// Decode verifies the bearer token signature against the pool's signing keys
// and returns its payload.
func (c *client) Decode(ctx context.Context, accessToken string) (*domain.AccessTokenPayload, error) {
	return c.decoder.Decode(ctx, accessToken)
}

// secretHash computes the SECRET_HASH auth parameter required by app clients
// configured with a secret: base64(hmac-sha256(username+clientID, secret)).
func (c *client) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func sessionTokenFromResult(result *types.AuthenticationResultType) (*domain.SessionToken, error) {
	if result.AccessToken == nil {
		return nil, newError(ReasonMissingAccessToken, nil)
	}
	if result.ExpiresIn == 0 {
		return nil, newError(ReasonMissingTokenExpiration, nil)
	}
	if result.IdToken == nil {
		return nil, newError(ReasonMissingIDToken, nil)
	}
	if result.RefreshToken == nil {
		return nil, newError(ReasonMissingRefreshToken, nil)
	}

	return &domain.SessionToken{
		AccessToken:  *result.AccessToken,
		IDToken:      *result.IdToken,
		RefreshToken: *result.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}

func strptr(s string) *string {
	return &s
}
