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

// PromotionsHandler handles vendor-scoped promotion CRUD.
type PromotionsHandler struct {
	PromotionService *service.PromotionService
}

// HandleCreate handles POST /v1/vendors/{id}/promotions
//
//	@Summary		Create promotion
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"vendor id"
//	@Param			request	body		PromotionRequest	true	"promotion fields"
//	@Success		201		{object}	PromotionResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"missing title or bad window"
//	@Failure		404		{object}	httpx.ErrorResponse	"vendor not found"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id}/promotions [post].
func (h *PromotionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	created, err := h.PromotionService.CreatePromotion(ctx, r.PathValue("id"), domain.Promotion{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Active:      req.Active,
	})
	switch {
	case errors.Is(err, service.ErrInvalidPromotion):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title and a coherent starts_at/ends_at window are required")
		return
	case errors.Is(err, service.ErrVendorNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Vendor not found")
		return
	case err != nil:
		log.Error("failed to create promotion", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create promotion")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPromotionResponse(created))
}

// HandleList handles GET /v1/vendors/{id}/promotions
//
//	@Summary		List a vendor's promotions
//	@Description	Pass ?active=true to restrict to promotions currently running.
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		string	true	"vendor id"
//	@Param			active	query		bool	false	"only promotions in their window"
//	@Success		200		{object}	ListPromotionsResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id}/promotions [get].
func (h *PromotionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	activeOnly := r.URL.Query().Get("active") == "true"
	promotions, err := h.PromotionService.ListPromotions(ctx, r.PathValue("id"), activeOnly)
	if err != nil {
		log.Error("failed to list promotions", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list promotions")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ListPromotionsResponse{Promotions: toPromotionResponses(promotions)})
}

// HandleUpdate handles PUT /v1/promotions/{id}
//
//	@Summary		Update promotion
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"promotion id"
//	@Param			request	body		PromotionRequest	true	"replacement fields"
//	@Success		200		{object}	PromotionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/promotions/{id} [put].
func (h *PromotionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	updated, err := h.PromotionService.UpdatePromotion(ctx, domain.Promotion{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Active:      req.Active,
	})
	switch {
	case errors.Is(err, service.ErrInvalidPromotion):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Title and a coherent starts_at/ends_at window are required")
		return
	case errors.Is(err, service.ErrPromotionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Promotion not found")
		return
	case err != nil:
		log.Error("failed to update promotion", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update promotion")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPromotionResponse(updated))
}

// HandleDelete handles DELETE /v1/promotions/{id}
//
//	@Summary		Delete promotion
//	@Tags			Promotions
//	@Security		BearerAuth
//	@Param			id	path	string	true	"promotion id"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/promotions/{id} [delete].
func (h *PromotionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.PromotionService.DeletePromotion(ctx, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Promotion not found")
		return
	case err != nil:
		log.Error("failed to delete promotion", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete promotion")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
