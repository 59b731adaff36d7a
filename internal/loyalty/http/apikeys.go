package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// APIKeysHandler handles the caller's own API keys.
type APIKeysHandler struct {
	APIKeyService *service.APIKeyService
}

// HandleMint handles POST /v1/apikeys
//
//	@Summary		Mint API key
//	@Description	Creates a key for third-party scanner applications. The raw key appears in this response only; store it now.
//	@Tags			APIKeys
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MintAPIKeyRequest	true	"key name"
//	@Success		201		{object}	MintAPIKeyResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/apikeys [post].
func (h *APIKeysHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req MintAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	minted, err := h.APIKeyService.Mint(ctx, httpx.UserIDFromContext(ctx), req.Name)
	switch {
	case errors.Is(err, service.ErrInvalidAPIKey):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Key name is required")
		return
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "Account missing or deactivated")
		return
	case err != nil:
		log.Error("failed to mint api key", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to mint API key")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MintAPIKeyResponse{
		ID:      minted.Key.ID,
		Name:    minted.Key.Name,
		APIKey:  minted.Raw,
		Created: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleList handles GET /v1/apikeys
//
//	@Summary		List API keys
//	@Description	Returns the caller's keys. Raw values are never included.
//	@Tags			APIKeys
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	ListAPIKeysResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/apikeys [get].
func (h *APIKeysHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	keys, err := h.APIKeyService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list api keys", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list API keys")
		return
	}

	resp := ListAPIKeysResponse{Keys: make([]APIKeyResponse, 0, len(keys))}
	for _, k := range keys {
		resp.Keys = append(resp.Keys, toAPIKeyResponse(k))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRevoke handles DELETE /v1/apikeys/{id}
//
//	@Summary		Revoke API key
//	@Description	Marks the key unusable. It stays listed until housekeeping purges it.
//	@Tags			APIKeys
//	@Security		BearerAuth
//	@Param			id	path	string	true	"key id"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		409	{object}	httpx.ErrorResponse	"already revoked"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/apikeys/{id} [delete].
func (h *APIKeysHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.APIKeyService.Revoke(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrAPIKeyNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "API key not found")
		return
	case errors.Is(err, service.ErrAPIKeyRevoked):
		httpx.WriteError(w, http.StatusConflict, "already_revoked", "API key is already revoked")
		return
	case err != nil:
		log.Error("failed to revoke api key", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to revoke API key")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
