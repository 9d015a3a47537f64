package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are carried by the session token handed out after login.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IDTokenClaims holds the identity claims read from the provider's id_token.
type IDTokenClaims struct {
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
	UPN               string `json:"upn"`
	Name              string `json:"name"`
	jwt.RegisteredClaims
}

// Identity returns the first non-empty mailbox-like claim.
func (c *IDTokenClaims) Identity() string {
	for _, v := range []string{c.Email, c.PreferredUsername, c.UPN} {
		if v != "" {
			return v
		}
	}
	return ""
}
