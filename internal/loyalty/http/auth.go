package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	RegistrationService *service.RegistrationService
	SessionService      *service.SessionService
	SessionTTLSeconds   int
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Creates a member account and stamps its QR scanner token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"username and password"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse	"username already taken"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	user, err := h.RegistrationService.Register(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidRegistration):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Username and password are required")
		return
	case errors.Is(err, service.ErrUsernameAlreadyTaken):
		httpx.WriteError(w, http.StatusConflict, "username_taken", "Username is already taken")
		return
	case err != nil:
		log.Error("registration failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to register")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		QRToken:  user.QRToken,
	})
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Verifies credentials and issues a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"username and password"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"invalid credentials"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	token, _, err := h.SessionService.Login(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Username or password is incorrect")
		return
	case err != nil:
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.SessionTTLSeconds,
	})
}
