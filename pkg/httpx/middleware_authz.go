package httpx

import "net/http"

// RequireAnyRole lets the request through when the authenticated caller has
// one of the listed roles.
func RequireAnyRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromContext(r.Context())]; !ok {
				WriteError(w, http.StatusForbidden, "insufficient_role", "caller role is not permitted for this endpoint")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
