package http

import (
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /v1/userinfo
//
//	@Summary		Get user information
//	@Description	Returns the authenticated user's profile including the stored QR token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserInfoResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing authenticated identity")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserInfoResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		QRToken:  user.QRToken,
		Active:   user.Active,
	})
}
