package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredentialStatus represents lifecycle states for an authentication credential.
type CredentialStatus string

const (
	CredentialStatusActive   CredentialStatus = "active"
	CredentialStatusInactive CredentialStatus = "inactive"
	CredentialStatusPending  CredentialStatus = "pending"
)

// ParseCredentialStatus validates a raw status value.
func ParseCredentialStatus(raw string) (CredentialStatus, bool) {
	switch CredentialStatus(raw) {
	case CredentialStatusActive, CredentialStatusInactive, CredentialStatusPending:
		return CredentialStatus(raw), true
	}
	return "", false
}

// AuthenticationCredential links a user to a datasource through an access
// token. The token is encrypted before it reaches storage.
type AuthenticationCredential struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Username     string           `json:"username"`
	AccessToken  string           `json:"accessToken"`
	Status       CredentialStatus `json:"status"`
	UserID       uuid.UUID        `json:"userId"`
	DatasourceID uuid.UUID        `json:"datasourceId"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
