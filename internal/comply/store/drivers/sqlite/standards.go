package sqlite

import (
	"context"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
)

type standardsRepo struct {
	db dbtx
}

func (r *standardsRepo) CreateStandard(ctx context.Context, s domain.Standard) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO standards (id, organisation_id, standard_clause, standard_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.OrganisationID, s.Clause, s.Description, toMillis(s.CreatedAt), toMillis(s.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *standardsRepo) GetStandardByID(ctx context.Context, id, organisationID string) (domain.Standard, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organisation_id, standard_clause, standard_description, created_at, updated_at
		FROM standards
		WHERE id = ? AND organisation_id = ?`,
		id, organisationID,
	)

	s, err := scanStandard(row)
	if err != nil {
		return domain.Standard{}, mapNotFound(err)
	}
	return s, nil
}

func (r *standardsRepo) ListStandards(ctx context.Context, organisationID string) ([]domain.Standard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organisation_id, standard_clause, standard_description, created_at, updated_at
		FROM standards
		WHERE organisation_id = ?
		ORDER BY standard_clause ASC`,
		organisationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standards []domain.Standard
	for rows.Next() {
		s, err := scanStandard(rows)
		if err != nil {
			return nil, err
		}
		standards = append(standards, s)
	}
	return standards, rows.Err()
}

func (r *standardsRepo) UpdateStandard(ctx context.Context, s domain.Standard) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE standards
		SET standard_clause = ?, standard_description = ?, updated_at = ?
		WHERE id = ? AND organisation_id = ?`,
		s.Clause, s.Description, toMillis(time.Now()), s.ID, s.OrganisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *standardsRepo) DeleteStandard(ctx context.Context, id, organisationID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM standards WHERE id = ? AND organisation_id = ?`,
		id, organisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanStandard(row rowScanner) (domain.Standard, error) {
	var (
		s         domain.Standard
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&s.ID, &s.OrganisationID, &s.Clause, &s.Description, &createdAt, &updatedAt)
	if err != nil {
		return domain.Standard{}, err
	}
	s.CreatedAt = fromMillis(createdAt)
	s.UpdatedAt = fromMillis(updatedAt)
	return s, nil
}
