package domain

import "time"

// Invitation grants one email address the right to join one organisation as
// a standard member. It is single-use and time-limited.
//
// Lifecycle: Pending (AcceptedAt nil, not expired) moves to Consumed exactly
// once, when a redemption transaction sets AcceptedAt. Expiry is a read-time
// classification; nothing is ever written to expire an invitation, and
// consumed or expired invitations are retained for audit.
type Invitation struct {
	ID             string
	Email          string
	OrganisationID string
	InvitedBy      string // member id of the issuer
	Token          string // opaque, high-entropy, unique across all invitations
	ExpiresAt      time.Time
	AcceptedAt     *time.Time // nil until consumed, set exactly once
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Redeemable reports whether the invitation can still be consumed at the
// given instant. The boundary is strict: at now == ExpiresAt it is expired.
func (inv Invitation) Redeemable(now time.Time) bool {
	return inv.AcceptedAt == nil && now.Before(inv.ExpiresAt)
}
