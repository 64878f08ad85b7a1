package httpx

import (
	"net/http"
	"strings"

	"github.com/clausehq/comply/pkg/slogx"
	"github.com/clausehq/comply/pkg/tokenx"
)

// Verifier validates a raw session token and returns its claims.
type Verifier interface {
	Verify(raw string) (tokenx.Claims, error)
}

// AuthnMiddleware verifies the bearer session token and injects the caller
// Identity into the request context. Requests without a valid token get a
// 401 with an RFC 6750 WWW-Authenticate header.
func AuthnMiddleware(v Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = ContextWithIdentity(ctx, Identity{
				MemberID:       claims.Subject,
				Email:          claims.Email,
				OrganisationID: claims.OrganisationID,
				Role:           claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
