package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/stampcard/loyalty/pkg/jwtx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

// APIKeyAuthenticator resolves a raw X-API-Key header value to the identity
// it acts as. Implemented by the api-key service.
type APIKeyAuthenticator interface {
	AuthenticateKey(ctx context.Context, rawKey string) (userID, role string, err error)
}

// AuthnMiddleware authenticates requests with a Bearer session token. If
// keys is non-nil, an X-API-Key header is accepted as an alternative (for
// third-party applications calling the scanner endpoints).
func AuthnMiddleware(signer *jwtx.Signer, keys APIKeyAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			if raw := r.Header.Get("X-API-Key"); raw != "" && keys != nil {
				userID, role, err := keys.AuthenticateKey(ctx, raw)
				if err != nil {
					log.Warn("api key auth failed", "err", err)
					WriteError(w, http.StatusUnauthorized, "invalid_api_key", "API key is unknown or revoked")
					return
				}
				next.ServeHTTP(w, r.WithContext(contextWithIdentity(ctx, userID, role, true)))
				return
			}

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := signer.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")))
			if err != nil {
				log.Warn("session token verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithIdentity(ctx, claims.Subject, claims.Role, false)))
		})
	}
}

func contextWithIdentity(ctx context.Context, userID, role string, viaAPIKey bool) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyRole, role)
	if viaAPIKey {
		ctx = context.WithValue(ctx, CtxKeyAPIKey, userID)
	}
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
