package domain

import "time"

// Organisation is the tenant boundary. Every other record is scoped to
// exactly one organisation.
type Organisation struct {
	ID            string
	Name          string
	ContactEmail  string
	ContactNumber string
	BrandingColor string
	RTOID         string // registered training organisation code, optional
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
