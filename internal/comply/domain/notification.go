package domain

import "time"

// Notification types.
const (
	NotificationTypeInvitation = "invitation"
	NotificationTypeMember     = "member"
	NotificationTypeRecord     = "record"
)

// Notification is an in-app event feed entry scoped to an organisation.
type Notification struct {
	ID             string
	OrganisationID string
	Type           string
	Action         string
	Title          string
	Message        string
	RecordID       string // optional link to a compliance record
	CreatedBy      string
	IsRead         bool
	CreatedAt      time.Time
}
