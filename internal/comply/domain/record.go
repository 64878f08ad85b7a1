package domain

import "time"

// Compliance status values. Stored as plain strings; the closed set is
// enforced at the service layer so new states don't need a migration.
const (
	ComplianceStatusCompliant    = "compliant"
	ComplianceStatusNonCompliant = "non_compliant"
	ComplianceStatusInProgress   = "in_progress"
)

// Review status values.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusReviewed = "reviewed"
	ReviewStatusOverdue  = "overdue"
)

// Record is a single compliance item tracked against a standard clause, with
// a responsible member and optional evidence file.
type Record struct {
	ID                string
	OrganisationID    string
	ComplianceItem    string
	StandardClause    string
	ResponsiblePerson string
	ComplianceStatus  string
	ReviewStatus      string
	NextReviewDate    *time.Time
	Notes             string
	FileName          string // original name of the attached evidence file
	FilePath          string // key into the evidence store, empty when none
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
