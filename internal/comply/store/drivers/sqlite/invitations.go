package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, email, organisation_id, invited_by, invite_token, expires_at, accepted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Email,
		inv.OrganisationID,
		inv.InvitedBy,
		inv.Token,
		toMillis(inv.ExpiresAt),
		toMillisPtr(inv.AcceptedAt),
		toMillis(inv.CreatedAt),
		toMillis(inv.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetPendingInvitationByToken(
	ctx context.Context,
	token string,
	now time.Time,
) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, organisation_id, invited_by, invite_token, expires_at, accepted_at, created_at, updated_at
		FROM invitations
		WHERE invite_token = ? AND accepted_at IS NULL AND expires_at > ?`,
		token, toMillis(now),
	)

	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

// MarkInvitationAccepted is the single state transition an invitation ever
// undergoes. The WHERE accepted_at IS NULL guard makes it first-committer
// wins; the loser of a concurrent redemption sees zero rows affected.
func (r *invitationsRepo) MarkInvitationAccepted(
	ctx context.Context,
	invitationID string,
	now time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET accepted_at = ?, updated_at = ?
		WHERE id = ? AND accepted_at IS NULL`,
		toMillis(now), toMillis(now), invitationID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) ListInvitations(
	ctx context.Context,
	organisationID string,
) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, organisation_id, invited_by, invite_token, expires_at, accepted_at, created_at, updated_at
		FROM invitations
		WHERE organisation_id = ?
		ORDER BY created_at DESC`,
		organisationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		expiresAt  int64
		acceptedAt sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(
		&inv.ID,
		&inv.Email,
		&inv.OrganisationID,
		&inv.InvitedBy,
		&inv.Token,
		&expiresAt,
		&acceptedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}

	inv.ExpiresAt = fromMillis(expiresAt)
	inv.AcceptedAt = fromMillisPtr(acceptedAt)
	inv.CreatedAt = fromMillis(createdAt)
	inv.UpdatedAt = fromMillis(updatedAt)
	return inv, nil
}
