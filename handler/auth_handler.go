package handler

import (
	"net/http"
	"office-graph-api/common"
	"office-graph-api/logger"
	"office-graph-api/model"
	"office-graph-api/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary      Start Microsoft sign-in
// @Description  Redirects the browser to the Microsoft authorization endpoint.
// @Tags         auth
// @Success      302
// @Router       /auth/login [get]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	authURL, err := h.service.BeginLogin(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not start login", err)
	}
	http.Redirect(w, r, authURL, http.StatusFound)
	return nil
}

// Callback godoc
// @Summary      Complete Microsoft sign-in
// @Description  Exchanges the authorization code, caches the user's token and returns a session token.
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "State issued by /auth/login"
// @Success      200    {object}  model.SessionResponse
// @Failure      400    {object}  common.AppError
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) *common.AppError {
	q := r.URL.Query()

	if providerErr := q.Get("error"); providerErr != "" {
		message := q.Get("error_description")
		if message == "" {
			message = providerErr
		}
		logger.Log.WithField("error_code", providerErr).Warn("Identity provider returned an error to the callback")
		return common.NewAppError(http.StatusBadRequest, message, nil)
	}

	code := q.Get("code")
	if code == "" {
		return common.NewAppError(http.StatusBadRequest, "Authorization code is required", nil)
	}

	session, err := h.service.CompleteLogin(r.Context(), q.Get("state"), code)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, session)
	return nil
}

// Logout godoc
// @Summary      Sign out
// @Description  Forgets the caller's cached Microsoft token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.MessageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	email, appErr := userEmail(r)
	if appErr != nil {
		return appErr
	}

	h.service.Logout(email)
	common.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Signed out"})
	return nil
}
