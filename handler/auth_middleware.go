package handler

import (
	"context"
	"net/http"
	"office-graph-api/common"
	"strings"
)

type contextKey string

const UserEmailKey contextKey = "userEmail"

// ISessionParser resolves a session token to the signed-in email and tells
// whether that email still has a cached credential.
type ISessionParser interface {
	ParseSession(tokenString string) (string, error)
	Authenticated(email string) error
}

// AuthMiddleware requires a valid session token in the Authorization header
// for an identity that is still signed in, and puts the caller's email into
// the request context.
func AuthMiddleware(sessions ISessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			email, err := sessions.ParseSession(headerParts[1])
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
				appErr.Send(w)
				return
			}
			if err := sessions.Authenticated(email); err != nil {
				serviceError(err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userEmail(r *http.Request) (string, *common.AppError) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	if !ok || email == "" {
		return "", common.NewAppError(http.StatusUnauthorized, "Invalid user identity in token", nil)
	}
	return email, nil
}
