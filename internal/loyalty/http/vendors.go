package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// VendorsHandler handles vendor CRUD and validator binding. All endpoints
// are admin-only; the router enforces the role.
type VendorsHandler struct {
	VendorService *service.VendorService
}

// HandleCreate handles POST /v1/vendors
//
//	@Summary		Create vendor
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateVendorRequest	true	"vendor name"
//	@Success		201		{object}	VendorResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"name already taken"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/vendors [post].
func (h *VendorsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	vendor, err := h.VendorService.CreateVendor(ctx, req.Name)
	switch {
	case errors.Is(err, service.ErrInvalidVendor):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Vendor name is required")
		return
	case errors.Is(err, service.ErrVendorNameTaken):
		httpx.WriteError(w, http.StatusConflict, "name_taken", "Vendor name is already taken")
		return
	case err != nil:
		log.Error("failed to create vendor", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create vendor")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toVendorResponse(vendor))
}

// HandleList handles GET /v1/vendors
//
//	@Summary		List vendors
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	ListVendorsResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/vendors [get].
func (h *VendorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	vendors, err := h.VendorService.ListVendors(ctx)
	if err != nil {
		log.Error("failed to list vendors", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list vendors")
		return
	}

	resp := ListVendorsResponse{Vendors: make([]VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		resp.Vendors = append(resp.Vendors, toVendorResponse(v))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/vendors/{id}
//
//	@Summary		Get vendor
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"vendor id"
//	@Success		200	{object}	VendorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id} [get].
func (h *VendorsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	vendor, err := h.VendorService.GetVendorByID(ctx, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Vendor not found")
		return
	case err != nil:
		log.Error("failed to fetch vendor", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to fetch vendor")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toVendorResponse(vendor))
}

// HandleDelete handles DELETE /v1/vendors/{id}
//
//	@Summary		Delete vendor
//	@Description	Removes the vendor; its promotions and validator bindings cascade.
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Param			id	path	string	true	"vendor id"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id} [delete].
func (h *VendorsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.VendorService.DeleteVendor(ctx, r.PathValue("id"))
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Vendor not found")
		return
	case err != nil:
		log.Error("failed to delete vendor", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to delete vendor")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleBindValidator handles POST /v1/vendors/{id}/validators
//
//	@Summary		Bind a validator
//	@Description	Makes an existing active user a validator for the vendor and promotes their role.
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"vendor id"
//	@Param			request	body		BindValidatorRequest	true	"user to bind"
//	@Success		201		{object}	ValidatorResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"vendor or user not found"
//	@Failure		409		{object}	httpx.ErrorResponse	"user already a validator"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id}/validators [post].
func (h *VendorsHandler) HandleBindValidator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req BindValidatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}
	if req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	validator, err := h.VendorService.BindValidator(ctx, r.PathValue("id"), req.UserID)
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Vendor not found")
		return
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "User missing or deactivated")
		return
	case errors.Is(err, service.ErrAlreadyValidator):
		httpx.WriteError(w, http.StatusConflict, "already_validator", "User is already a validator")
		return
	case err != nil:
		log.Error("failed to bind validator", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to bind validator")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ValidatorResponse{
		ID:       validator.ID,
		UserID:   validator.UserID,
		VendorID: validator.VendorID,
	})
}

// HandleListValidators handles GET /v1/vendors/{id}/validators
//
//	@Summary		List a vendor's validators
//	@Tags			Vendors
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"vendor id"
//	@Success		200	{object}	ListValidatorsResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/vendors/{id}/validators [get].
func (h *VendorsHandler) HandleListValidators(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	validators, err := h.VendorService.ListValidators(ctx, r.PathValue("id"))
	if err != nil {
		log.Error("failed to list validators", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list validators")
		return
	}

	resp := ListValidatorsResponse{Validators: make([]ValidatorResponse, 0, len(validators))}
	for _, v := range validators {
		resp.Validators = append(resp.Validators, ValidatorResponse{ID: v.ID, UserID: v.UserID, VendorID: v.VendorID})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
