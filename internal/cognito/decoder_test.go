package cognito

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signer struct {
	key *rsa.PrivateKey
}

func newSigner(t *testing.T) *signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &signer{key: key}
}

func (s *signer) keyfunc(_ *jwt.Token) (interface{}, error) {
	return &s.key.PublicKey, nil
}

func (s *signer) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	require.NoError(t, err)
	return signed
}

func TestDecodeValidToken(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)
	expiry := time.Now().Add(time.Hour)

	accessToken := s.sign(t, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   expiry.Unix(),
	})

	payload, err := decoder.Decode(context.Background(), accessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", payload.Username)
	assert.WithinDuration(t, expiry, payload.ExpiresAt, time.Second)
}

func TestDecodeFallsBackToUsernameClaim(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	accessToken := s.sign(t, jwt.MapClaims{
		"username": "ana",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	payload, err := decoder.Decode(context.Background(), accessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", payload.Username)
}

func TestDecodeExpiredToken(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	accessToken := s.sign(t, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})

	_, err := decoder.Decode(context.Background(), accessToken)
	requireReason(t, err, ReasonUnauthorized)
}

func TestDecodeRejectsNonRSASignature(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = decoder.Decode(context.Background(), signed)
	requireReason(t, err, ReasonUnauthorized)
}

func TestDecodeMalformedToken(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	_, err := decoder.Decode(context.Background(), "not-a-jwt")
	requireReason(t, err, ReasonUnauthorized)
}

func TestDecodeMissingIdentityClaims(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	accessToken := s.sign(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := decoder.Decode(context.Background(), accessToken)
	requireReason(t, err, ReasonUnauthorized)
}

func TestDecodeMissingExpiration(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(s.keyfunc)

	accessToken := s.sign(t, jwt.MapClaims{
		"email": "ana@example.com",
	})

	_, err := decoder.Decode(context.Background(), accessToken)
	requireReason(t, err, ReasonUnauthorized)
}

func TestDecodeKeyResolutionFailure(t *testing.T) {
	s := newSigner(t)
	decoder := NewTokenDecoderWithKeyfunc(func(_ *jwt.Token) (interface{}, error) {
		return nil, errors.New("jwks unavailable")
	})

	accessToken := s.sign(t, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := decoder.Decode(context.Background(), accessToken)
	requireReason(t, err, ReasonUnknown)
}

func requireReason(t *testing.T, err error, reason ErrorReason) {
	t.Helper()

	var cognitoErr *Error
	require.True(t, errors.As(err, &cognitoErr), "expected cognito error, got %v", err)
	assert.Equal(t, reason, cognitoErr.Reason)
}
