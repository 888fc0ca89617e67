package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pinktech/kounty-api/internal/domain"
	"github.com/pinktech/kounty-api/internal/events"
	"github.com/pinktech/kounty-api/internal/repository"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// CreateCredentialParams carries the fields to attach a credential to a
// datasource.
type CreateCredentialParams struct {
	Name         string
	Username     string
	AccessToken  string
	Status       string
	DatasourceID uuid.UUID
}

// CredentialService manages datasource authentication credentials on behalf
// of an authenticated user. Access tokens are encrypted at rest.
type CredentialService struct {
	credentials repository.CredentialRepository
	datasources repository.DatasourceRepository
	cipher      *TokenCipher
	dispatcher  events.Dispatcher
}

// NewCredentialService builds the service.
func NewCredentialService(
	credentials repository.CredentialRepository,
	datasources repository.DatasourceRepository,
	cipher *TokenCipher,
	dispatcher events.Dispatcher,
) *CredentialService {
	return &CredentialService{
		credentials: credentials,
		datasources: datasources,
		cipher:      cipher,
		dispatcher:  dispatcher,
	}
}

// Create attaches a new credential to a datasource for the given user.
func (s *CredentialService) Create(ctx context.Context, params CreateCredentialParams, userID uuid.UUID) (*domain.AuthenticationCredential, error) {
	if _, err := s.datasources.GetByID(ctx, params.DatasourceID.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("El origen de datos no se encontro.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	status, ok := domain.ParseCredentialStatus(params.Status)
	if !ok {
		return nil, errorutil.NewBadRequest("INVALID_STATUS", "El estatus para la credencial no es valido.")
	}

	sealed, err := s.cipher.Seal(params.AccessToken)
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}

	credential := &domain.AuthenticationCredential{
		Name:         params.Name,
		Username:     params.Username,
		AccessToken:  sealed,
		Status:       status,
		UserID:       userID,
		DatasourceID: params.DatasourceID,
	}
	if err := s.credentials.Create(ctx, credential); err != nil {
		return nil, errorutil.NewInternalError(err)
	}

	return s.withPlainToken(credential, params.AccessToken), nil
}

// Show returns a single credential owned by the user, with the access token
// decrypted.
func (s *CredentialService) Show(ctx context.Context, id, userID uuid.UUID) (*domain.AuthenticationCredential, error) {
	credential, err := s.credentials.GetByID(ctx, id.String(), userID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("La credencial no se encontro.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	plain, err := s.cipher.Open(credential.AccessToken)
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}
	return s.withPlainToken(credential, plain), nil
}

// Retrieve lists the user's credentials for a datasource. Access tokens stay
// sealed in list responses.
func (s *CredentialService) Retrieve(ctx context.Context, datasourceID, userID uuid.UUID) ([]domain.AuthenticationCredential, error) {
	if _, err := s.datasources.GetByID(ctx, datasourceID.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("El origen de datos no se encontro.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	credentials, err := s.credentials.ListByDatasource(ctx, datasourceID.String(), userID.String())
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}
	for i := range credentials {
		credentials[i].AccessToken = ""
	}
	return credentials, nil
}

// Rename updates the display name of a credential.
func (s *CredentialService) Rename(ctx context.Context, id, userID uuid.UUID, name string) (*domain.AuthenticationCredential, error) {
	credential, err := s.credentials.GetByID(ctx, id.String(), userID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("La credencial no se encontro.")
		}
		return nil, errorutil.NewInternalError(err)
	}

	credential.Name = name
	if err := s.credentials.Update(ctx, credential); err != nil {
		return nil, errorutil.NewInternalError(err)
	}
	credential.AccessToken = ""
	return credential, nil
}

// UpdateStatus transitions the credential status and publishes the change.
func (s *CredentialService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, rawStatus string) error {
	status, ok := domain.ParseCredentialStatus(rawStatus)
	if !ok {
		return errorutil.NewBadRequest("INVALID_STATUS", "El estatus para la credencial es invalido.")
	}

	credential, err := s.credentials.GetByID(ctx, id.String(), userID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("La credencial no se encontro.")
		}
		return errorutil.NewInternalError(err)
	}

	oldStatus := credential.Status
	credential.Status = status
	if err := s.credentials.Update(ctx, credential); err != nil {
		return errorutil.NewInternalError(err)
	}

	if s.dispatcher != nil && oldStatus != status {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCredentialStatusChanged,
			Timestamp: time.Now(),
			Payload: events.CredentialStatusChangedPayload{
				CredentialID: credential.ID.String(),
				OldStatus:    oldStatus,
				NewStatus:    status,
			},
		})
	}
	return nil
}

// Delete removes a credential owned by the user.
func (s *CredentialService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.credentials.Delete(ctx, id.String(), userID.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("La credencial no se encontro.")
		}
		return errorutil.NewInternalError(err)
	}
	return nil
}

func (s *CredentialService) withPlainToken(credential *domain.AuthenticationCredential, token string) *domain.AuthenticationCredential {
	out := *credential
	out.AccessToken = token
	return &out
}
