package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
)

type recordsRepo struct {
	db dbtx
}

func (r *recordsRepo) CreateRecord(ctx context.Context, rec domain.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO compliance_records (
			id, organisation_id, compliance_item, standard_clause, responsible_person,
			compliance_status, review_status, next_review_date, notes, file_name, file_path,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.OrganisationID,
		rec.ComplianceItem,
		rec.StandardClause,
		rec.ResponsiblePerson,
		rec.ComplianceStatus,
		mapStringNull(rec.ReviewStatus),
		toMillisPtr(rec.NextReviewDate),
		mapStringNull(rec.Notes),
		mapStringNull(rec.FileName),
		mapStringNull(rec.FilePath),
		toMillis(rec.CreatedAt),
		toMillis(rec.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *recordsRepo) GetRecordByID(ctx context.Context, id, organisationID string) (domain.Record, error) {
	row := r.db.QueryRowContext(ctx, selectRecord+` WHERE id = ? AND organisation_id = ?`, id, organisationID)

	rec, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *recordsRepo) ListRecords(ctx context.Context, organisationID string) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		selectRecord+` WHERE organisation_id = ? ORDER BY created_at DESC`,
		organisationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordsRepo) UpdateRecord(ctx context.Context, rec domain.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE compliance_records
		SET compliance_item = ?, standard_clause = ?, responsible_person = ?,
		    compliance_status = ?, review_status = ?, next_review_date = ?, notes = ?,
		    updated_at = ?
		WHERE id = ? AND organisation_id = ?`,
		rec.ComplianceItem,
		rec.StandardClause,
		rec.ResponsiblePerson,
		rec.ComplianceStatus,
		mapStringNull(rec.ReviewStatus),
		toMillisPtr(rec.NextReviewDate),
		mapStringNull(rec.Notes),
		toMillis(time.Now()),
		rec.ID,
		rec.OrganisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *recordsRepo) UpdateRecordEvidence(ctx context.Context, id, organisationID, fileName, filePath string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE compliance_records
		SET file_name = ?, file_path = ?, updated_at = ?
		WHERE id = ? AND organisation_id = ?`,
		mapStringNull(fileName), mapStringNull(filePath), toMillis(time.Now()), id, organisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *recordsRepo) DeleteRecord(ctx context.Context, id, organisationID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM compliance_records WHERE id = ? AND organisation_id = ?`,
		id, organisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

const selectRecord = `
	SELECT id, organisation_id, compliance_item, standard_clause, responsible_person,
	       compliance_status, review_status, next_review_date, notes, file_name, file_path,
	       created_at, updated_at
	FROM compliance_records`

func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		rec            domain.Record
		reviewStatus   sql.NullString
		nextReviewDate sql.NullInt64
		notes          sql.NullString
		fileName       sql.NullString
		filePath       sql.NullString
		createdAt      int64
		updatedAt      int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.OrganisationID,
		&rec.ComplianceItem,
		&rec.StandardClause,
		&rec.ResponsiblePerson,
		&rec.ComplianceStatus,
		&reviewStatus,
		&nextReviewDate,
		&notes,
		&fileName,
		&filePath,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}

	rec.ReviewStatus = mapNullString(reviewStatus)
	rec.NextReviewDate = fromMillisPtr(nextReviewDate)
	rec.Notes = mapNullString(notes)
	rec.FileName = mapNullString(fileName)
	rec.FilePath = mapNullString(filePath)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
