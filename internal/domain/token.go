package domain

import "time"

// SessionToken is the token set issued by the identity provider on sign-in.
// Opaque to the rest of the system except for ExpiresAt.
type SessionToken struct {
	AccessToken  string    `json:"accessToken"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresIn"`
}

// AccessTokenPayload is the decoded content of a bearer access token.
// Username is the email used to look up the local user record.
type AccessTokenPayload struct {
	Username  string
	ExpiresAt time.Time
}
