package domain

import "time"

// Role is the two-variant permission level of a member. Display labels for
// roles are a presentation concern and live at the HTTP boundary, never here.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleMember }

// Member is a person belonging to exactly one organisation. The member id is
// the account id, and OrganisationID is fixed at creation from the consumed
// invitation; it is never reassigned.
type Member struct {
	ID             string
	OrganisationID string
	Email          string
	FullName       string
	PhoneNumber    string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Account is a login credential. Exactly one per member; the email is unique
// across the whole deployment.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2id, PHC encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
