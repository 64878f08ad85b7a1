package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
)

type membersRepo struct {
	db dbtx
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organisation_members (id, organisation_id, email, full_name, phone_number, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.OrganisationID,
		m.Email,
		mapStringNull(m.FullName),
		mapStringNull(m.PhoneNumber),
		string(m.Role),
		toMillis(m.CreatedAt),
		toMillis(m.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *membersRepo) GetMemberByID(ctx context.Context, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organisation_id, email, full_name, phone_number, role, created_at, updated_at
		FROM organisation_members
		WHERE id = ?`,
		id,
	)

	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) ListMembers(ctx context.Context, organisationID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organisation_id, email, full_name, phone_number, role, created_at, updated_at
		FROM organisation_members
		WHERE organisation_id = ?
		ORDER BY created_at ASC`,
		organisationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membersRepo) CountMembers(ctx context.Context, organisationID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organisation_members WHERE organisation_id = ?`,
		organisationID,
	).Scan(&count)
	return count, err
}

func (r *membersRepo) CountAdmins(ctx context.Context, organisationID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organisation_members WHERE organisation_id = ? AND role = 'admin'`,
		organisationID,
	).Scan(&count)
	return count, err
}

func (r *membersRepo) UpdateMemberRole(ctx context.Context, memberID string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organisation_members SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), toMillis(time.Now()), memberID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *membersRepo) UpdateMemberProfile(ctx context.Context, memberID, fullName, phoneNumber string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organisation_members SET full_name = ?, phone_number = ?, updated_at = ? WHERE id = ?`,
		mapStringNull(fullName), mapStringNull(phoneNumber), toMillis(time.Now()), memberID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *membersRepo) DeleteMember(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM organisation_members WHERE id = ?`, memberID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanMember(row rowScanner) (domain.Member, error) {
	var (
		m           domain.Member
		fullName    sql.NullString
		phoneNumber sql.NullString
		role        string
		createdAt   int64
		updatedAt   int64
	)
	err := row.Scan(
		&m.ID,
		&m.OrganisationID,
		&m.Email,
		&fullName,
		&phoneNumber,
		&role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Member{}, err
	}

	m.FullName = mapNullString(fullName)
	m.PhoneNumber = mapNullString(phoneNumber)
	m.Role = domain.Role(role)
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}
