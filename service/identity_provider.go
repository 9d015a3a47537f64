// file: service/identity_provider.go

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"office-graph-api/config"
	"office-graph-api/logger"
	"office-graph-api/model"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

var ErrAuthenticationFailed = errors.New("authentication failed")

// Used when the token endpoint omits expires_in.
const defaultTokenLifetime = time.Hour

// IIdentityProvider wraps the authorization-code and refresh-token grants.
type IIdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*model.Grant, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenRecord, error)
}

// OAuthProvider talks to an OAuth2/OpenID Connect token endpoint.
type OAuthProvider struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	now        func() time.Time
}

// NewMicrosoftProvider configures the Microsoft identity platform for the
// tenant in cfg. AuthorityURL overrides login.microsoftonline.com.
func NewMicrosoftProvider(cfg config.MicrosoftConfig, httpClient *http.Client) *OAuthProvider {
	endpoint := microsoft.AzureADEndpoint(cfg.TenantID)
	if cfg.AuthorityURL != "" {
		base := strings.TrimRight(cfg.AuthorityURL, "/") + "/" + cfg.TenantID + "/oauth2/v2.0"
		endpoint = oauth2.Endpoint{
			AuthURL:   base + "/authorize",
			TokenURL:  base + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
	}

	return NewOAuthProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       cfg.Scopes,
	}, httpClient)
}

func NewOAuthProvider(conf *oauth2.Config, httpClient *http.Client) *OAuthProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OAuthProvider{oauth: conf, httpClient: httpClient, now: time.Now}
}

func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "query"))
}

// Exchange trades a one-time authorization code for a token record and
// reads the signed-in user's email from the id_token.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*model.Grant, error) {
	tok, err := p.oauth.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return nil, providerFailure("authorization code exchange", err)
	}

	record, err := p.toRecord(tok)
	if err != nil {
		return nil, err
	}

	email, err := identityFromIDToken(tok)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("email", email).Info("Authorization code exchanged")
	return &model.Grant{Email: email, Token: *record}, nil
}

// Refresh redeems refreshToken for a new access token.
func (p *OAuthProvider) Refresh(ctx context.Context, refreshToken string) (*model.TokenRecord, error) {
	src := p.oauth.TokenSource(p.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, providerFailure("refresh token exchange", err)
	}
	return p.toRecord(tok)
}

func (p *OAuthProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func (p *OAuthProvider) toRecord(tok *oauth2.Token) (*model.TokenRecord, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider response did not include an access token", ErrAuthenticationFailed)
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = p.now().Add(defaultTokenLifetime)
	}

	return &model.TokenRecord{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// The id_token arrives directly from the token endpoint over TLS, so its
// claims are read without verifying the signature.
func identityFromIDToken(tok *oauth2.Token) (string, error) {
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return "", fmt.Errorf("%w: provider response did not include an id_token", ErrAuthenticationFailed)
	}

	claims := &model.IDTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("%w: malformed id_token: %v", ErrAuthenticationFailed, err)
	}

	email := claims.Identity()
	if email == "" {
		return "", fmt.Errorf("%w: id_token carries no email claim", ErrAuthenticationFailed)
	}
	return email, nil
}

// providerFailure keeps the provider's error_description when it sent one.
func providerFailure(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		detail := re.ErrorDescription
		if detail == "" {
			detail = re.ErrorCode
		}
		if detail == "" {
			detail = strings.TrimSpace(string(re.Body))
		}
		logger.Log.WithField("operation", op).WithField("error_code", re.ErrorCode).Warn("Identity provider rejected request")
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, detail)
	}
	return fmt.Errorf("%w: %s: %v", ErrAuthenticationFailed, op, err)
}
