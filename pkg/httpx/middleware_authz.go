package httpx

import "net/http"

// RequireRole rejects callers whose session role is not one of the allowed
// roles. Must run after AuthnMiddleware.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if _, ok := want[id.Role]; !ok {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error": "insufficient_role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
