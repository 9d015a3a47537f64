// file: model/token.go

package model

import "time"

// TokenRecord is the delegated credential cached for one user.
// It is replaced wholesale whenever the token is refreshed.
type TokenRecord struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token can no longer be used at now.
// skew moves the deadline earlier so a token is not sent with seconds left.
func (t TokenRecord) Expired(now time.Time, skew time.Duration) bool {
	return !now.Before(t.ExpiresAt.Add(-skew))
}

// Grant is the outcome of an authorization-code exchange.
type Grant struct {
	Email string
	Token TokenRecord
}
