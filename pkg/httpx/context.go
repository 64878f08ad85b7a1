package httpx

import "context"

// Identity is the authenticated caller attached to a request context by
// AuthnMiddleware. Handlers scope every query by OrganisationID taken from
// here, never from request parameters.
type Identity struct {
	MemberID       string
	Email          string
	OrganisationID string
	Role           string
}

type identityKey struct{}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity and whether one is present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
