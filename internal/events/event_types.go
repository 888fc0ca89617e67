package events

import (
	"time"

	"github.com/pinktech/kounty-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp              EventType = "user_signed_up"
	EventPasswordRecoveryRequested EventType = "password_recovery_requested"
	EventCredentialStatusChanged   EventType = "credential_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// PasswordRecoveryRequestedPayload payload.
type PasswordRecoveryRequestedPayload struct {
	Email string `json:"email"`
}

// CredentialStatusChangedPayload payload.
type CredentialStatusChangedPayload struct {
	CredentialID string                  `json:"credential_id"`
	OldStatus    domain.CredentialStatus `json:"old_status"`
	NewStatus    domain.CredentialStatus `json:"new_status"`
}
