package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain model for registered accounts. Credentials live in the
// identity provider; this record only carries profile data, so it is never
// mutated by the authentication core.
type User struct {
	ID          uuid.UUID `json:"id"`
	CountryCode string    `json:"countryCode"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
