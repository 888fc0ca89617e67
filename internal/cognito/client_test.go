package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	idp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviderAPI struct {
	initiateAuthFn          func(*idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error)
	signUpFn                func(*idp.SignUpInput) (*idp.SignUpOutput, error)
	confirmSignUpFn         func(*idp.ConfirmSignUpInput) (*idp.ConfirmSignUpOutput, error)
	forgotPasswordFn        func(*idp.ForgotPasswordInput) (*idp.ForgotPasswordOutput, error)
	confirmForgotPasswordFn func(*idp.ConfirmForgotPasswordInput) (*idp.ConfirmForgotPasswordOutput, error)
}

func (f *fakeProviderAPI) InitiateAuth(_ context.Context, params *idp.InitiateAuthInput, _ ...func(*idp.Options)) (*idp.InitiateAuthOutput, error) {
	return f.initiateAuthFn(params)
}

func (f *fakeProviderAPI) SignUp(_ context.Context, params *idp.SignUpInput, _ ...func(*idp.Options)) (*idp.SignUpOutput, error) {
	return f.signUpFn(params)
}

func (f *fakeProviderAPI) ConfirmSignUp(_ context.Context, params *idp.ConfirmSignUpInput, _ ...func(*idp.Options)) (*idp.ConfirmSignUpOutput, error) {
	return f.confirmSignUpFn(params)
}

func (f *fakeProviderAPI) ForgotPassword(_ context.Context, params *idp.ForgotPasswordInput, _ ...func(*idp.Options)) (*idp.ForgotPasswordOutput, error) {
	return f.forgotPasswordFn(params)
}

func (f *fakeProviderAPI) ConfirmForgotPassword(_ context.Context, params *idp.ConfirmForgotPasswordInput, _ ...func(*idp.Options)) (*idp.ConfirmForgotPasswordOutput, error) {
	return f.confirmForgotPasswordFn(params)
}

func authResult() *types.AuthenticationResultType {
	return &types.AuthenticationResultType{
		AccessToken:  aws.String("access"),
		IdToken:      aws.String("id"),
		RefreshToken: aws.String("refresh"),
		ExpiresIn:    3600,
	}
}

func TestSignInReturnsSessionToken(t *testing.T) {
	api := &fakeProviderAPI{
		initiateAuthFn: func(in *idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
			assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, in.AuthFlow)
			assert.Equal(t, "ana@example.com", in.AuthParameters["USERNAME"])
			assert.Equal(t, "s3cret", in.AuthParameters["PASSWORD"])
			return &idp.InitiateAuthOutput{AuthenticationResult: authResult()}, nil
		},
	}
	c := &client{api: api, clientID: "client-id"}

	token, err := c.SignIn(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "id", token.IDToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestSignInSendsSecretHashWhenConfigured(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("app-secret"))
	mac.Write([]byte("ana@example.com" + "client-id"))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	api := &fakeProviderAPI{
		initiateAuthFn: func(in *idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
			assert.Equal(t, expected, in.AuthParameters["SECRET_HASH"])
			return &idp.InitiateAuthOutput{AuthenticationResult: authResult()}, nil
		},
	}
	c := &client{api: api, clientID: "client-id", clientSecret: "app-secret"}

	_, err := c.SignIn(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
}

func TestSignInOmitsSecretHashWithoutSecret(t *testing.T) {
	api := &fakeProviderAPI{
		initiateAuthFn: func(in *idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
			_, present := in.AuthParameters["SECRET_HASH"]
			assert.False(t, present)
			return &idp.InitiateAuthOutput{AuthenticationResult: authResult()}, nil
		},
	}
	c := &client{api: api, clientID: "client-id"}

	_, err := c.SignIn(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
}

func TestSignInClassifiesProviderError(t *testing.T) {
	api := &fakeProviderAPI{
		initiateAuthFn: func(*idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "NotAuthorizedException"}
		},
	}
	c := &client{api: api, clientID: "client-id"}

	_, err := c.SignIn(context.Background(), "ana@example.com", "wrong")
	requireReason(t, err, ReasonUnauthorized)
}

func TestSignInRejectsChallengeResponse(t *testing.T) {
	api := &fakeProviderAPI{
		initiateAuthFn: func(*idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
			return &idp.InitiateAuthOutput{}, nil
		},
	}
	c := &client{api: api, clientID: "client-id"}

	_, err := c.SignIn(context.Background(), "ana@example.com", "s3cret")
	requireReason(t, err, ReasonSignInFailed)
}

func TestSignInIncompleteTokenSet(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.AuthenticationResultType)
		reason ErrorReason
	}{
		{"missing access token", func(r *types.AuthenticationResultType) { r.AccessToken = nil }, ReasonMissingAccessToken},
		{"missing expiration", func(r *types.AuthenticationResultType) { r.ExpiresIn = 0 }, ReasonMissingTokenExpiration},
		{"missing id token", func(r *types.AuthenticationResultType) { r.IdToken = nil }, ReasonMissingIDToken},
		{"missing refresh token", func(r *types.AuthenticationResultType) { r.RefreshToken = nil }, ReasonMissingRefreshToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := authResult()
			tc.mutate(result)

			api := &fakeProviderAPI{
				initiateAuthFn: func(*idp.InitiateAuthInput) (*idp.InitiateAuthOutput, error) {
					return &idp.InitiateAuthOutput{AuthenticationResult: result}, nil
				},
			}
			c := &client{api: api, clientID: "client-id"}

			_, err := c.SignIn(context.Background(), "ana@example.com", "s3cret")
			requireReason(t, err, tc.reason)
		})
	}
}

func TestSignUpSendsProfileAttributes(t *testing.T) {
	api := &fakeProviderAPI{
		signUpFn: func(in *idp.SignUpInput) (*idp.SignUpOutput, error) {
			attrs := map[string]string{}
			for _, attr := range in.UserAttributes {
				attrs[*attr.Name] = *attr.Value
			}
			assert.Equal(t, "Ana", attrs["given_name"])
			assert.Equal(t, "Pérez", attrs["family_name"])
			require.NotNil(t, in.SecretHash)
			return &idp.SignUpOutput{}, nil
		},
	}
	c := &client{api: api, clientID: "client-id", clientSecret: "app-secret"}

	err := c.SignUp(context.Background(), "ana@example.com", "s3cret", "Ana", "Pérez")
	require.NoError(t, err)
}

func TestConfirmSignUpClassifiesCodeMismatch(t *testing.T) {
	api := &fakeProviderAPI{
		confirmSignUpFn: func(*idp.ConfirmSignUpInput) (*idp.ConfirmSignUpOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "CodeMismatchException"}
		},
	}
	c := &client{api: api, clientID: "client-id"}

	err := c.ConfirmSignUp(context.Background(), "ana@example.com", "000000")
	requireReason(t, err, ReasonInvalidConfirmationCode)
}

func TestConfirmForgotPasswordClassifiesExpiredCode(t *testing.T) {
	api := &fakeProviderAPI{
		confirmForgotPasswordFn: func(*idp.ConfirmForgotPasswordInput) (*idp.ConfirmForgotPasswordOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "ExpiredCodeException"}
		},
	}
	c := &client{api: api, clientID: "client-id"}

	err := c.ConfirmForgotPassword(context.Background(), "ana@example.com", "NewPass1!", "123456")
	requireReason(t, err, ReasonExpiredConfirmationCode)
}

func TestForgotPasswordSuccess(t *testing.T) {
	api := &fakeProviderAPI{
		forgotPasswordFn: func(in *idp.ForgotPasswordInput) (*idp.ForgotPasswordOutput, error) {
			assert.Equal(t, "ana@example.com", *in.Username)
			return &idp.ForgotPasswordOutput{}, nil
		},
	}
	c := &client{api: api, clientID: "client-id"}

	require.NoError(t, c.ForgotPassword(context.Background(), "ana@example.com"))
}
