package handler

import (
	"errors"
	"fmt"
	"net/http"
	"office-graph-api/common"
	"office-graph-api/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// serviceError maps a service-layer failure onto the response the client sees.
func serviceError(err error) *common.AppError {
	var perr *service.ProviderError

	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return common.NewAppError(http.StatusUnauthorized, "Not authenticated. Sign in at /auth/login first.", nil)
	case errors.Is(err, service.ErrRefreshFailed):
		return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, service.ErrInvalidSession):
		return common.NewAppError(http.StatusUnauthorized, "Invalid or expired session token", nil)
	case errors.Is(err, service.ErrInvalidState):
		return common.NewAppError(http.StatusBadRequest, "Invalid or expired login state", nil)
	case errors.Is(err, service.ErrAuthenticationFailed):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)

	case errors.As(err, &perr):
		status := perr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		message := perr.Body
		if message == "" {
			message = fmt.Sprintf("provider returned status %d", perr.Status)
		}
		return common.NewAppError(status, message, err)

	case errors.Is(err, service.ErrGenerationRateLimited):
		return common.NewAppError(http.StatusTooManyRequests, service.ErrGenerationRateLimited.Error(), err)
	case errors.Is(err, service.ErrGenerationUnauthorized):
		return common.NewAppError(http.StatusBadGateway, service.ErrGenerationUnauthorized.Error(), err)
	case errors.Is(err, service.ErrGenerationUnavailable):
		return common.NewAppError(http.StatusServiceUnavailable, service.ErrGenerationUnavailable.Error(), err)
	case errors.Is(err, service.ErrGenerationFailed):
		return common.NewAppError(http.StatusBadGateway, service.ErrGenerationFailed.Error(), err)

	case errors.Is(err, service.ErrUnsupportedFormat):
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrFileNotFound):
		return common.NewAppError(http.StatusNotFound, "File not found", nil)
	}

	return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
