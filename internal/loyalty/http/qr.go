package http

import (
	"errors"
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

type QRHandler struct {
	RegistrationService *service.RegistrationService
}

// HandleRefresh handles POST /v1/users/me/qr/refresh
//
//	@Summary		Refresh QR token
//	@Description	Re-issues the caller's scanner token with a fresh timestamp. The user id inside the token never changes.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	QRRefreshResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"account missing or deactivated"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/users/me/qr/refresh [post].
func (h *QRHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing authenticated identity")
		return
	}

	token, err := h.RegistrationService.RefreshQRToken(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Account missing or deactivated")
		return
	case err != nil:
		log.Error("qr refresh failed", "user_id", userID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to refresh QR token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, QRRefreshResponse{QRToken: token})
}
