package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/httpx"
	"github.com/stampcard/loyalty/pkg/jwtx"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stampcard/loyalty/pkg/slogx"

	_ "github.com/stampcard/loyalty/api/loyalty" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	codec        *scantoken.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	RegistrationService *service.RegistrationService
	SessionService      *service.SessionService
	UserService         *service.UserService
	VendorService       *service.VendorService
	PromotionService    *service.PromotionService
	APIKeyService       *service.APIKeyService
	ScannerService      *service.ScannerService
}

func NewRouter(
	signer *jwtx.Signer,
	codec *scantoken.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerVendors()
	r.registerPromotions()
	r.registerAPIKeys()
	r.registerScanner()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Loyalty Platform API
//	@version		0.1.0
//	@description	Loyalty and promotions platform built around an encrypted QR scanner token protocol.
//	@description
//	@description				Users carry an encrypted token in their QR code; vendor validators scan it to
//	@description				resolve the customer and the promotions currently running.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT. Format: "Bearer {token}". Scanner endpoints also accept an X-API-Key header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn verifies a Bearer session token; API keys are accepted only where a
// keys authenticator is passed (scanner endpoints).
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.signer, nil)
}

func (r *Router) authnWithAPIKeys() httpx.Middleware {
	return httpx.AuthnMiddleware(r.signer, r.APIKeyService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		RegistrationService: r.RegistrationService,
		SessionService:      r.SessionService,
		SessionTTLSeconds:   int(r.signer.TTL().Seconds()),
	}

	// Both endpoints are unauthenticated and brute-forceable; strict IP limit.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	info := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(info,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	qr := &QRHandler{RegistrationService: r.RegistrationService}
	r.Mux.Handle("POST /v1/users/me/qr/refresh",
		httpx.Chain(http.HandlerFunc(qr.HandleRefresh),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	users := &UsersHandler{UserService: r.UserService}
	r.Mux.Handle("PUT /v1/users/{id}/active",
		httpx.Chain(http.HandlerFunc(users.HandleSetActive),
			r.authn(),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVendors() {
	h := &VendorsHandler{VendorService: r.VendorService}

	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			r.authn(),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/vendors", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/vendors", admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/vendors/{id}", admin(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("DELETE /v1/vendors/{id}", admin(http.HandlerFunc(h.HandleDelete)))
	r.Mux.Handle("POST /v1/vendors/{id}/validators", admin(http.HandlerFunc(h.HandleBindValidator)))
	r.Mux.Handle("GET /v1/vendors/{id}/validators", admin(http.HandlerFunc(h.HandleListValidators)))
}

func (r *Router) registerPromotions() {
	h := &PromotionsHandler{PromotionService: r.PromotionService}

	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			r.authn(),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/vendors/{id}/promotions", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /v1/promotions/{id}", admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/promotions/{id}", admin(http.HandlerFunc(h.HandleDelete)))

	// Reads are open to any authenticated caller (validators browse these).
	r.Mux.Handle("GET /v1/vendors/{id}/promotions",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAPIKeys() {
	h := &APIKeysHandler{APIKeyService: r.APIKeyService}

	secured := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/apikeys", secured(http.HandlerFunc(h.HandleMint)))
	r.Mux.Handle("GET /v1/apikeys", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("DELETE /v1/apikeys/{id}", secured(http.HandlerFunc(h.HandleRevoke)))
}

func (r *Router) registerScanner() {
	h := &ScannerHandler{ScannerService: r.ScannerService}

	// Scan endpoints accept API keys so kiosk hardware doesn't hold sessions.
	// Strict limits: each failed scan is a token-probing opportunity.
	r.Mux.Handle("POST /v1/scanner/scan",
		httpx.Chain(http.HandlerFunc(h.HandleScan),
			r.authnWithAPIKeys(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/scanner/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			r.authnWithAPIKeys(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/scanner/encrypt",
		httpx.Chain(http.HandlerFunc(h.HandleEncrypt),
			r.authn(),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
