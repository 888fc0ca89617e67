package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/pinktech/kounty-api/internal/cognito"
	"github.com/pinktech/kounty-api/internal/domain"
	"github.com/pinktech/kounty-api/internal/events"
	"github.com/pinktech/kounty-api/internal/observability"
	"github.com/pinktech/kounty-api/internal/repository"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

const uniqueViolationCode = "23505"

// SignUpParams carries the fields required to register an account.
type SignUpParams struct {
	CountryCode string
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	Password    string
}

// ConfirmForgotPasswordParams carries the fields required to complete a
// password recovery.
type ConfirmForgotPasswordParams struct {
	Email            string
	NewPassword      string
	ConfirmPassword  string
	ConfirmationCode string
}

// AuthService orchestrates sign-in, sign-up and password recovery by
// combining the identity provider with local persistence.
type AuthService struct {
	verifier   cognito.Client
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(
	verifier cognito.Client,
	users repository.UserRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *AuthService {
	return &AuthService{
		verifier:   verifier,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// SignIn authenticates against the provider and verifies the account also
// exists locally. The provider accepting credentials for an email with no
// local row is a consistency fault surfaced as not-found.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.SessionToken, error) {
	token, err := s.verifier.SignIn(ctx, email, password)
	if err != nil {
		return nil, s.providerError(err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("El usuario no se encuentra registrado.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	return token, nil
}

// SignUp registers the account with the provider and persists the local
// user record. There is no compensating deregistration if persistence fails
// after the provider accepted the sign-up; the account can be reconciled by
// signing in once the local record exists.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) error {
	existing, err := s.users.FindByEmailOrPhone(ctx, params.Email, params.Phone)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return errorutil.NewInternalError(err)
	}
	if existing != nil {
		if existing.Email == params.Email {
			return errorutil.NewConflict("EMAIL_TAKEN", "El email se encuentra registrado.")
		}
		return errorutil.NewConflict("PHONE_TAKEN", "El telefono se encuentra registrado.")
	}

	if err := s.verifier.SignUp(ctx, params.Email, params.Password, params.FirstName, params.LastName); err != nil {
		return s.providerError(err)
	}

	user := &domain.User{
		CountryCode: params.CountryCode,
		Email:       params.Email,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Phone:       params.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errorutil.NewConflict("EMAIL_TAKEN", "El email se encuentra registrado.")
		}
		return errorutil.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserSignedUp, events.UserSignedUpPayload{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
	})
	return nil
}

// ConfirmSignUp confirms a registration with the emailed code.
func (s *AuthService) ConfirmSignUp(ctx context.Context, email, confirmationCode string) error {
	if err := s.verifier.ConfirmSignUp(ctx, email, confirmationCode); err != nil {
		return s.providerError(err)
	}
	return nil
}

// ForgotPassword asks the provider to send a recovery code.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.verifier.ForgotPassword(ctx, email); err != nil {
		return s.providerError(err)
	}

	s.publish(ctx, events.EventPasswordRecoveryRequested, events.PasswordRecoveryRequestedPayload{
		Email: email,
	})
	return nil
}

// ConfirmForgotPassword completes a recovery. The password confirmation is
// checked locally first so a mismatch never reaches the provider.
func (s *AuthService) ConfirmForgotPassword(ctx context.Context, params ConfirmForgotPasswordParams) error {
	if params.NewPassword != params.ConfirmPassword {
		return errorutil.NewBadRequest("PASSWORD_MISMATCH", "Las contraseñas no coinciden.")
	}

	if err := s.verifier.ConfirmForgotPassword(ctx, params.Email, params.NewPassword, params.ConfirmationCode); err != nil {
		return s.providerError(err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *AuthService) providerError(err error) error {
	var cognitoErr *cognito.Error
	if errors.As(err, &cognitoErr) {
		s.metrics.RecordProviderError(string(cognitoErr.Reason))
		return cognitoErr.DomainError()
	}
	return errorutil.NewInternalError(err)
}
