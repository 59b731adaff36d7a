package http

import (
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

// Request/response bodies for every endpoint. Domain structs never cross the
// HTTP boundary directly.

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	QRToken  string `json:"qr_token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type UserInfoResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	QRToken  string `json:"qr_token"`
	Active   bool   `json:"active"`
}

type QRRefreshResponse struct {
	QRToken string `json:"qr_token"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type CreateVendorRequest struct {
	Name string `json:"name"`
}

type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

type BindValidatorRequest struct {
	UserID string `json:"user_id"`
}

type ValidatorResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
}

type ListValidatorsResponse struct {
	Validators []ValidatorResponse `json:"validators"`
}

type PromotionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Active      bool      `json:"active"`
}

type PromotionResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Active      bool      `json:"active"`
}

type ListPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
}

type MintAPIKeyRequest struct {
	Name string `json:"name"`
}

type MintAPIKeyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	APIKey  string `json:"api_key"` // shown once, never retrievable again
	Created string `json:"created_at"`
}

type APIKeyResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Revoked    bool       `json:"revoked"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

type ListAPIKeysResponse struct {
	Keys []APIKeyResponse `json:"keys"`
}

type ScanRequest struct {
	Token string `json:"token"`
}

// ScanResponse reports a scan outcome. User fields are present only when
// status is "valid".
type ScanResponse struct {
	Status       string `json:"status"`
	UserID       string `json:"user_id,omitempty"`
	Username     string `json:"username,omitempty"`
	TimestampUTC string `json:"timestamp_utc,omitempty"`
}

// ValidateResponse is the vendor-scoped scan outcome. Promotions is always
// present for a valid scan, even when the vendor has nothing running.
type ValidateResponse struct {
	ScanResponse
	Promotions []PromotionResponse `json:"promotions"`
}

type EncryptRequest struct {
	UserID string `json:"userId"`
}

type EncryptResponse struct {
	Encrypted string `json:"encrypted"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Cipher   string `json:"cipher"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

func toVendorResponse(v domain.Vendor) VendorResponse {
	return VendorResponse{ID: v.ID, Name: v.Name, CreatedAt: v.CreatedAt}
}

func toPromotionResponse(p domain.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Title:       p.Title,
		Description: p.Description,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Active:      p.Active,
	}
}

func toPromotionResponses(ps []domain.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPromotionResponse(p))
	}
	return out
}

func toScanResponse(r domain.ScanResult) ScanResponse {
	resp := ScanResponse{Status: string(r.Status)}
	if r.User != nil {
		resp.UserID = r.User.ID
		resp.Username = r.User.Username
		resp.TimestampUTC = r.TimestampUTC
	}
	return resp
}

func toAPIKeyResponse(k domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Revoked:    k.Revoked,
		RevokedAt:  k.RevokedAt,
		CreatedAt:  k.CreatedAt,
		LastUsedAt: k.LastUsedAt,
	}
}
