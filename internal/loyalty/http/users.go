package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// UsersHandler holds the admin account-management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleSetActive handles PUT /v1/users/{id}/active
//
//	@Summary		Activate or deactivate an account
//	@Description	Deactivated accounts cannot log in and their QR tokens scan as inactive.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string				true	"user id"
//	@Param			request	body	SetActiveRequest	true	"desired active flag"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/users/{id}/active [put].
func (h *UsersHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	err := h.UserService.SetActive(ctx, r.PathValue("id"), req.Active)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found")
		return
	case err != nil:
		log.Error("failed to set active flag", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
