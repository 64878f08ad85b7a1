package store

import (
	"context"
	"errors"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns tidy; the external store is
// the sole arbiter of consistency between concurrent requests, so anything
// multi-step goes through WithTx.
type Store interface {
	Organisations() Organisations
	Accounts() Accounts
	Members() Members
	Invitations() Invitations
	Standards() Standards
	Records() Records
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Preferred over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repositories plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organisations interface {
	CreateOrganisation(ctx context.Context, o domain.Organisation) error

	GetOrganisationByID(ctx context.Context, id string) (domain.Organisation, error)

	// UpdateOrganisation replaces the mutable settings fields and bumps
	// updated_at.
	UpdateOrganisation(ctx context.Context, o domain.Organisation) error

	// IsEmpty reports whether no organisations exist yet (pre-bootstrap).
	IsEmpty(ctx context.Context) (bool, error)
}

type Accounts interface {
	// CreateAccount inserts a login credential. Returns ErrAlreadyExists
	// when the email is already registered.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)
}

type Members interface {
	// CreateMember inserts a member row. The id must equal the account id.
	CreateMember(ctx context.Context, m domain.Member) error

	GetMemberByID(ctx context.Context, id string) (domain.Member, error)

	// ListMembers returns all members of an organisation, oldest first.
	ListMembers(ctx context.Context, organisationID string) ([]domain.Member, error)

	CountMembers(ctx context.Context, organisationID string) (int, error)

	// CountAdmins is used to refuse demoting or removing the last admin.
	CountAdmins(ctx context.Context, organisationID string) (int, error)

	UpdateMemberRole(ctx context.Context, memberID string, role domain.Role) error

	UpdateMemberProfile(ctx context.Context, memberID, fullName, phoneNumber string) error

	DeleteMember(ctx context.Context, memberID string) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation with accepted_at NULL. The
	// token column is UNIQUE; a collision surfaces as ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetPendingInvitationByToken returns the invitation matching token
	// with accepted_at IS NULL AND expires_at > now. At most one row can
	// match. Missing, consumed and expired all return ErrNotFound so
	// callers cannot distinguish them.
	GetPendingInvitationByToken(ctx context.Context, token string, now time.Time) (domain.Invitation, error)

	// MarkInvitationAccepted sets accepted_at, conditional on it still
	// being NULL. Returns ErrNotFound when another redemption got there
	// first; only one caller can ever win.
	MarkInvitationAccepted(ctx context.Context, invitationID string, now time.Time) error

	// ListInvitations returns an organisation's invitations, newest first.
	// Consumed and expired rows are included; they are kept for audit.
	ListInvitations(ctx context.Context, organisationID string) ([]domain.Invitation, error)
}

type Standards interface {
	CreateStandard(ctx context.Context, s domain.Standard) error
	GetStandardByID(ctx context.Context, id, organisationID string) (domain.Standard, error)
	ListStandards(ctx context.Context, organisationID string) ([]domain.Standard, error)
	UpdateStandard(ctx context.Context, s domain.Standard) error
	DeleteStandard(ctx context.Context, id, organisationID string) error
}

type Records interface {
	CreateRecord(ctx context.Context, r domain.Record) error
	GetRecordByID(ctx context.Context, id, organisationID string) (domain.Record, error)
	ListRecords(ctx context.Context, organisationID string) ([]domain.Record, error)
	UpdateRecord(ctx context.Context, r domain.Record) error

	// UpdateRecordEvidence attaches an uploaded evidence object to a record.
	UpdateRecordEvidence(ctx context.Context, id, organisationID, fileName, filePath string) error

	DeleteRecord(ctx context.Context, id, organisationID string) error
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error

	// ListNotifications returns the newest notifications for an
	// organisation, capped at limit.
	ListNotifications(ctx context.Context, organisationID string, limit int) ([]domain.Notification, error)

	MarkNotificationRead(ctx context.Context, id, organisationID string) error

	// DeleteReadNotificationsBefore prunes read notifications created
	// before the cutoff. Housekeeping only; invitations are never pruned.
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error
}
