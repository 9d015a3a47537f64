package service

import (
	"context"
	"errors"
	"fmt"
	"office-graph-api/logger"
	"office-graph-api/model"
	"office-graph-api/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrInvalidState     = errors.New("invalid or expired login state")
	ErrInvalidSession   = errors.New("invalid or expired session token")
)

const loginStateTTL = 10 * time.Minute

// IAccessTokenSource yields a bearer token that is valid for the next call.
type IAccessTokenSource interface {
	AccessToken(ctx context.Context, email string) (string, error)
}

type AuthOptions struct {
	JWTSecret  string
	SessionTTL time.Duration
	// ExpirySkew treats tokens as expired this long before ExpiresAt.
	ExpirySkew time.Duration
}

// AuthService owns the login flow, session tokens and the delegated token
// lifecycle for every signed-in user.
type AuthService struct {
	provider  IIdentityProvider
	tokens    repository.ITokenRepository
	states    repository.IStateRepository
	opts      AuthOptions
	refreshes singleflight.Group
	now       func() time.Time
}

func NewAuthService(provider IIdentityProvider, tokens repository.ITokenRepository, states repository.IStateRepository, opts AuthOptions) *AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	return &AuthService{
		provider: provider,
		tokens:   tokens,
		states:   states,
		opts:     opts,
		now:      time.Now,
	}
}

// BeginLogin issues a one-time state value and returns the provider's
// authorization URL the browser should be redirected to.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.states.Save(ctx, state, loginStateTTL); err != nil {
		return "", err
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteLogin validates state, exchanges the code and caches the token.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (*model.SessionResponse, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	grant, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	s.tokens.Save(grant.Email, grant.Token)

	sessionToken, expiresAt, err := s.IssueSession(grant.Email)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("email", grant.Email).Info("User signed in")
	return &model.SessionResponse{
		Email:        grant.Email,
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout forgets the cached token for email.
func (s *AuthService) Logout(email string) {
	s.tokens.Delete(email)
	logger.Log.WithField("email", email).Info("User signed out")
}

// Authenticated reports ErrNotAuthenticated when no token is cached for
// email. An expired token still counts; AccessToken refreshes it on use.
func (s *AuthService) Authenticated(email string) error {
	if _, ok := s.tokens.Get(email); !ok {
		return ErrNotAuthenticated
	}
	return nil
}

// AccessToken returns a bearer token for email, refreshing it first when
// the cached one has expired. Concurrent callers for the same email share
// a single refresh.
func (s *AuthService) AccessToken(ctx context.Context, email string) (string, error) {
	record, ok := s.tokens.Get(email)
	if !ok {
		return "", ErrNotAuthenticated
	}
	if !record.Expired(s.now(), s.opts.ExpirySkew) {
		return record.AccessToken, nil
	}

	v, err, _ := s.refreshes.Do(email, func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx), email)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *AuthService) refresh(ctx context.Context, email string) (string, error) {
	// A caller that finished just before us may already have refreshed.
	record, ok := s.tokens.Get(email)
	if !ok {
		return "", ErrNotAuthenticated
	}
	if !record.Expired(s.now(), s.opts.ExpirySkew) {
		return record.AccessToken, nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"email":      email,
		"expired_at": record.ExpiresAt,
	})
	if record.RefreshToken == "" {
		log.Warn("Cached token expired and no refresh token is available")
		return "", fmt.Errorf("%w: no refresh token available", ErrRefreshFailed)
	}

	log.Info("Refreshing expired access token")
	renewed, err := s.provider.Refresh(ctx, record.RefreshToken)
	if err != nil {
		log.WithError(err).Warn("Token refresh rejected")
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	if renewed.RefreshToken == "" {
		renewed.RefreshToken = record.RefreshToken
	}
	s.tokens.Save(email, *renewed)

	return renewed.AccessToken, nil
}

// IssueSession signs a session token identifying email.
func (s *AuthService) IssueSession(email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.opts.SessionTTL)

	claims := &model.SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to sign session token")
		return "", time.Time{}, fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseSession validates a session token and returns the email it carries.
func (s *AuthService) ParseSession(tokenString string) (string, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Email == "" {
		return "", ErrInvalidSession
	}
	return claims.Email, nil
}
