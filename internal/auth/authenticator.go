// Package auth implements bearer-token session authentication: a cache-aside
// lookup over the identity provider's token decode and the local user store.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pinktech/kounty-api/internal/cache"
	"github.com/pinktech/kounty-api/internal/cognito"
	"github.com/pinktech/kounty-api/internal/domain"
	"github.com/pinktech/kounty-api/internal/observability"
	"github.com/pinktech/kounty-api/internal/repository"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// TokenDecoder validates a bearer token and returns its payload.
type TokenDecoder interface {
	Decode(ctx context.Context, accessToken string) (*domain.AccessTokenPayload, error)
}

// sessionEntry is the cached result of a successful cold-path lookup, keyed
// by the raw bearer token.
type sessionEntry struct {
	User       domain.User `json:"user"`
	Expiration time.Time   `json:"expiration"`
}

// Authenticator turns bearer tokens into trusted identities.
type Authenticator struct {
	decoder TokenDecoder
	users   repository.UserRepository
	store   cache.Store
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewAuthenticator builds the authenticator.
func NewAuthenticator(
	decoder TokenDecoder,
	users repository.UserRepository,
	store cache.Store,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *Authenticator {
	return &Authenticator{
		decoder: decoder,
		users:   users,
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Authenticate resolves the bearer token to a user.
//
// Warm path: an unexpired cached entry short-circuits without touching the
// provider or the database. An expired entry fails with 401 and is left in
// place; the next write for that key overwrites it, and the Redis backend
// TTL eventually reaps it.
//
// Cold path: decode the token, load the user by the decoded username, then
// populate the cache. The cache write is best effort: the cache is an
// optimization, not a correctness dependency, so a failed write is logged
// and the request still succeeds. Concurrent cold paths for one token may
// race; both derive the identical entry and last write wins.
func (a *Authenticator) Authenticate(ctx context.Context, bearerToken string) (*domain.User, error) {
	entry, err := cache.Read[sessionEntry](ctx, a.store, bearerToken)
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}

	if entry != nil {
		if !entry.Expiration.After(a.now()) {
			a.metrics.RecordSessionExpired()
			return nil, errorutil.NewUnauthorized("El usuario no esta autenticado.")
		}
		a.metrics.RecordSessionCacheHit()
		return &entry.User, nil
	}
	a.metrics.RecordSessionCacheMiss()

	payload, err := a.decoder.Decode(ctx, bearerToken)
	if err != nil {
		return nil, a.providerError(err)
	}

	user, err := a.users.FindByEmail(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("Usuario no encontrado.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	newEntry := sessionEntry{User: *user, Expiration: payload.ExpiresAt}
	if err := cache.Write(ctx, a.store, bearerToken, newEntry); err != nil {
		a.logger.Warn("session cache write failed", zap.Error(err))
	}

	return user, nil
}

func (a *Authenticator) providerError(err error) error {
	var cognitoErr *cognito.Error
	if errors.As(err, &cognitoErr) {
		a.metrics.RecordProviderError(string(cognitoErr.Reason))
		return cognitoErr.DomainError()
	}
	return errorutil.NewInternalError(err)
}
