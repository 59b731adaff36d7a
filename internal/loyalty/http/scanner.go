package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// ScannerHandler exposes the scan verification pipeline. Callers are
// authenticated with either a session token or an X-API-Key.
type ScannerHandler struct {
	ScannerService *service.ScannerService
}

// scanStatusCode maps terminal scan outcomes to HTTP status codes. The body
// always carries the precise status; the code groups it for dumb clients.
func scanStatusCode(status domain.ScanStatus) int {
	switch status {
	case domain.ScanValid:
		return http.StatusOK
	case domain.ScanUnknownUser:
		return http.StatusNotFound
	case domain.ScanInactiveUser:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// HandleScan handles POST /v1/scanner/scan
//
//	@Summary		Scan a QR token
//	@Description	Decrypts and verifies a scanned token, resolving it to the user it identifies.
//	@Tags			Scanner
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ScanRequest		true	"the scanned token"
//	@Success		200		{object}	ScanResponse	"status=valid with user identity"
//	@Failure		400		{object}	ScanResponse	"status=malformed_token, decryption_failed or token_expired"
//	@Failure		403		{object}	ScanResponse	"status=inactive_user"
//	@Failure		404		{object}	ScanResponse	"status=unknown_user"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/scanner/scan [post].
func (h *ScannerHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	result, err := h.ScannerService.Scan(ctx, req.Token)
	if err != nil {
		log.Error("scan failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to process scan")
		return
	}

	httpx.WriteJSON(w, scanStatusCode(result.Status), toScanResponse(result))
}

// HandleValidate handles POST /v1/scanner/validate
//
//	@Summary		Validate a QR token for the caller's vendor
//	@Description	Same pipeline as scan, then resolves active promotions for the calling validator's vendor. The caller must be bound as a validator.
//	@Tags			Scanner
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ScanRequest			true	"the scanned token"
//	@Success		200		{object}	ValidateResponse	"status=valid with promotions (possibly empty)"
//	@Failure		400		{object}	ScanResponse
//	@Failure		403		{object}	httpx.ErrorResponse	"caller is not a validator"
//	@Failure		404		{object}	ScanResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/scanner/validate [post].
func (h *ScannerHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	result, err := h.ScannerService.ValidateForVendor(ctx, req.Token, httpx.UserIDFromContext(ctx))
	switch {
	case errors.Is(err, service.ErrNotValidator):
		httpx.WriteError(w, http.StatusForbidden, "not_validator", "Caller is not bound to a vendor")
		return
	case err != nil:
		log.Error("validate failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to process scan")
		return
	}

	if !result.OK() {
		httpx.WriteJSON(w, scanStatusCode(result.Status), toScanResponse(result))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ValidateResponse{
		ScanResponse: toScanResponse(result),
		Promotions:   toPromotionResponses(result.Promotions),
	})
}

// HandleEncrypt handles POST /v1/scanner/encrypt
//
//	@Summary		Encrypt a user id into a scanner token
//	@Description	Admin tooling endpoint. Produces a token identical in form to a stored QR token.
//	@Tags			Scanner
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		EncryptRequest	true	"user id to embed"
//	@Success		200		{object}	EncryptResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"empty userId"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/scanner/encrypt [post].
func (h *ScannerHandler) HandleEncrypt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}
	if req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}

	token, err := h.ScannerService.EncryptForScanner(ctx, req.UserID)
	if err != nil {
		log.Error("encrypt failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to encrypt")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, EncryptResponse{Encrypted: token})
}
