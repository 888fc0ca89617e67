package cognito

import (
	"context"
	"errors"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pinktech/kounty-api/internal/config"
	"github.com/pinktech/kounty-api/internal/domain"
)

// TokenDecoder verifies pool-issued JWTs against the JWKS endpoint and
// extracts the session payload.
type TokenDecoder struct {
	keyFunc jwt.Keyfunc
}

type tokenClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewTokenDecoder fetches the user pool JWKS and keeps it refreshed in the
// background until ctx is cancelled.
func NewTokenDecoder(ctx context.Context, cfg config.CognitoConfig) (*TokenDecoder, error) {
	jwks, err := keyfunc.Get(cfg.JWKSURL(), keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   cfg.JWKSRefreshInterval(),
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, newError(ReasonUnknown, err)
	}
	return &TokenDecoder{keyFunc: jwks.Keyfunc}, nil
}

// NewTokenDecoderWithKeyfunc builds a decoder around an explicit key
// resolver.
func NewTokenDecoderWithKeyfunc(keyFunc jwt.Keyfunc) *TokenDecoder {
	return &TokenDecoder{keyFunc: keyFunc}
}

// Decode parses and validates the access token. Invalid, expired or
// malformed tokens fail with UNAUTHORIZED; a failure to resolve signing keys
// is classified UNKNOWN since the token itself was never judged.
func (d *TokenDecoder) Decode(_ context.Context, accessToken string) (*domain.AccessTokenPayload, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, d.keyFunc, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, newError(ReasonUnknown, err)
		}
		return nil, newError(ReasonUnauthorized, err)
	}
	if !token.Valid {
		return nil, newError(ReasonUnauthorized, nil)
	}

	username := claims.Email
	if username == "" {
		username = claims.Username
	}
	if username == "" || claims.ExpiresAt == nil {
		return nil, newError(ReasonUnauthorized, nil)
	}

	return &domain.AccessTokenPayload{
		Username:  username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
