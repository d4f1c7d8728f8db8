package models

import "time"

// TokenInfo pairs a signed token with the absolute instant it expires,
// for client display alongside the credential itself.
type TokenInfo struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the envelope returned on login and registration.
type AuthTokens struct {
	Access TokenInfo `json:"access"`
}
