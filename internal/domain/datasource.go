package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthenticationType describes how a datasource expects users to
// authenticate.
type AuthenticationType string

const (
	AuthenticationTypeEmailOnly            AuthenticationType = "emailOnly"
	AuthenticationTypeEmailAndAccessKey    AuthenticationType = "emailAndAccessKey"
	AuthenticationTypeUsernameAndAccessKey AuthenticationType = "usernameAndAccessKey"
	AuthenticationTypeUnknown              AuthenticationType = "unknown"
)

// ParseAuthenticationType maps a raw value onto the known set; anything
// unrecognized is reported as unknown rather than rejected.
func ParseAuthenticationType(raw string) AuthenticationType {
	switch AuthenticationType(raw) {
	case AuthenticationTypeEmailOnly, AuthenticationTypeEmailAndAccessKey, AuthenticationTypeUsernameAndAccessKey:
		return AuthenticationType(raw)
	}
	return AuthenticationTypeUnknown
}

// Datasource is an external provider a user can connect credentials to.
type Datasource struct {
	ID                 uuid.UUID          `json:"id"`
	AuthenticationType AuthenticationType `json:"authenticationType"`
	LogoURL            string             `json:"logoUrl"`
	Name               string             `json:"name"`
	URL                string             `json:"url"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
