package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"office-graph-api/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("idp-signing-key"))
	require.NoError(t, err)
	return raw
}

// newFakeTokenEndpoint serves /{tenant}/oauth2/v2.0/token the way the
// Microsoft identity platform does for both grants used here.
func newFakeTokenEndpoint(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/tenant-1/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			if r.PostForm.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"error":             "invalid_grant",
					"error_description": "AADSTS70008: The provided authorization code has expired.",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token_type":    "Bearer",
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"expires_in":    3600,
				"id_token":      idToken,
			})
		case "refresh_token":
			if r.PostForm.Get("refresh_token") != "refresh-1" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"error":             "invalid_grant",
					"error_description": "AADSTS700082: The refresh token has expired.",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token_type":    "Bearer",
				"access_token":  "access-2",
				"refresh_token": "refresh-2",
				"expires_in":    1800,
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(authority string) *OAuthProvider {
	return NewMicrosoftProvider(config.MicrosoftConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TenantID:     "tenant-1",
		RedirectURI:  "http://localhost:8080/auth/callback",
		AuthorityURL: authority,
		Scopes:       []string{"openid", "offline_access", "Mail.Send"},
	}, &http.Client{Timeout: 5 * time.Second})
}

func TestOAuthProvider_AuthCodeURL(t *testing.T) {
	p := newTestProvider("")

	u, err := url.Parse(p.AuthCodeURL("state-123"))
	require.NoError(t, err)

	assert.Equal(t, "login.microsoftonline.com", u.Host)
	assert.Equal(t, "/tenant-1/oauth2/v2.0/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "query", q.Get("response_mode"))
	assert.Equal(t, "http://localhost:8080/auth/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "offline_access")
}

func TestOAuthProvider_Exchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newFakeTokenEndpoint(t, fakeIDToken(t, jwt.MapClaims{"preferred_username": "ada@contoso.com", "name": "Ada"}))
		p := newTestProvider(srv.URL)

		before := time.Now()
		grant, err := p.Exchange(context.Background(), "good-code")

		require.NoError(t, err)
		assert.Equal(t, "ada@contoso.com", grant.Email)
		assert.Equal(t, "access-1", grant.Token.AccessToken)
		assert.Equal(t, "refresh-1", grant.Token.RefreshToken)
		assert.WithinDuration(t, before.Add(time.Hour), grant.Token.ExpiresAt, 5*time.Second)
	})

	t.Run("email claim wins", func(t *testing.T) {
		srv := newFakeTokenEndpoint(t, fakeIDToken(t, jwt.MapClaims{"email": "ada.lovelace@contoso.com", "preferred_username": "ada@contoso.com"}))
		p := newTestProvider(srv.URL)

		grant, err := p.Exchange(context.Background(), "good-code")

		require.NoError(t, err)
		assert.Equal(t, "ada.lovelace@contoso.com", grant.Email)
	})

	t.Run("rejected code keeps error description", func(t *testing.T) {
		srv := newFakeTokenEndpoint(t, "")
		p := newTestProvider(srv.URL)

		_, err := p.Exchange(context.Background(), "expired-code")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "AADSTS70008")
	})

	t.Run("missing id_token", func(t *testing.T) {
		srv := newFakeTokenEndpoint(t, "")
		p := newTestProvider(srv.URL)

		_, err := p.Exchange(context.Background(), "good-code")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "id_token")
	})

	t.Run("id_token without identity claims", func(t *testing.T) {
		srv := newFakeTokenEndpoint(t, fakeIDToken(t, jwt.MapClaims{"name": "Ada"}))
		p := newTestProvider(srv.URL)

		_, err := p.Exchange(context.Background(), "good-code")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestOAuthProvider_Refresh(t *testing.T) {
	srv := newFakeTokenEndpoint(t, "")
	p := newTestProvider(srv.URL)

	t.Run("success", func(t *testing.T) {
		record, err := p.Refresh(context.Background(), "refresh-1")

		require.NoError(t, err)
		assert.Equal(t, "access-2", record.AccessToken)
		assert.Equal(t, "refresh-2", record.RefreshToken)
		assert.True(t, record.ExpiresAt.After(time.Now().Add(29*time.Minute)))
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := p.Refresh(context.Background(), "revoked")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "AADSTS700082")
	})
}
