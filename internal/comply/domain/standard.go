package domain

import "time"

// Standard is a clause of a compliance standard an organisation tracks
// records against.
type Standard struct {
	ID             string
	OrganisationID string
	Clause         string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
