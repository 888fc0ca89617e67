package dto

import "github.com/google/uuid"

// CreateCredentialRequest payload for attaching a credential to a datasource.
type CreateCredentialRequest struct {
	Name         string    `json:"name" validate:"required"`
	Username     string    `json:"username" validate:"required"`
	AccessToken  string    `json:"accessToken" validate:"required"`
	Status       string    `json:"status" validate:"required"`
	DatasourceID uuid.UUID `json:"datasourceId" validate:"required"`
}

// UpdateCredentialRequest payload for renaming a credential.
type UpdateCredentialRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateCredentialStatusRequest payload for status transitions.
type UpdateCredentialStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
