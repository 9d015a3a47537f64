package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"office-graph-api/common"
	"office-graph-api/config"
	"office-graph-api/model"
	"office-graph-api/repository"
	"office-graph-api/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthHandler() (*AuthHandler, *repository.TokenRepository) {
	provider := service.NewMicrosoftProvider(config.MicrosoftConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TenantID:     "tenant-1",
		RedirectURI:  "http://localhost:8080/auth/callback",
		Scopes:       []string{"openid", "offline_access"},
	}, nil)
	tokens := repository.NewTokenRepository()
	svc := service.NewAuthService(provider, tokens, repository.NewMemoryStateRepository(), service.AuthOptions{
		JWTSecret: "handler-test-secret",
	})
	return NewAuthHandler(svc), tokens
}

func withEmail(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserEmailKey, email))
}

func decodeAppError(t *testing.T, rr *httptest.ResponseRecorder) common.AppError {
	t.Helper()
	var body common.AppError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Login(t *testing.T) {
	h, _ := newTestAuthHandler()
	rr := httptest.NewRecorder()

	ErrorHandlingMiddleware(h.Login)(rr, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "login.microsoftonline.com", location.Host)
	assert.Equal(t, "/tenant-1/oauth2/v2.0/authorize", location.Path)
	assert.NotEmpty(t, location.Query().Get("state"))
}

func TestAuthHandler_Callback(t *testing.T) {
	h, _ := newTestAuthHandler()

	tests := []struct {
		name        string
		query       string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "provider error with description",
			query:       "error=access_denied&error_description=AADSTS65004%3A+User+declined+to+consent",
			wantCode:    http.StatusBadRequest,
			wantMessage: "AADSTS65004: User declined to consent",
		},
		{
			name:        "provider error without description",
			query:       "error=access_denied",
			wantCode:    http.StatusBadRequest,
			wantMessage: "access_denied",
		},
		{
			name:        "missing code",
			query:       "state=abc",
			wantCode:    http.StatusBadRequest,
			wantMessage: "Authorization code is required",
		},
		{
			name:        "unknown state",
			query:       "code=abc&state=never-issued",
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid or expired login state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ErrorHandlingMiddleware(h.Callback)(rr, httptest.NewRequest(http.MethodGet, "/auth/callback?"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMessage, decodeAppError(t, rr).Message)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h, tokens := newTestAuthHandler()
	tokens.Save("ada@contoso.com", model.TokenRecord{AccessToken: "access-1", ExpiresAt: time.Now().Add(time.Hour)})

	rr := httptest.NewRecorder()
	req := withEmail(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), "ada@contoso.com")
	ErrorHandlingMiddleware(h.Logout)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Signed out"}`, rr.Body.String())
	_, ok := tokens.Get("ada@contoso.com")
	assert.False(t, ok)
}
