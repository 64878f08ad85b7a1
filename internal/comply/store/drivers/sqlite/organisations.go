package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
)

type organisationsRepo struct {
	db dbtx
}

func (r *organisationsRepo) CreateOrganisation(ctx context.Context, o domain.Organisation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organisations (id, name, contact_email, contact_number, branding_color, rto_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID,
		o.Name,
		mapStringNull(o.ContactEmail),
		mapStringNull(o.ContactNumber),
		mapStringNull(o.BrandingColor),
		mapStringNull(o.RTOID),
		toMillis(o.CreatedAt),
		toMillis(o.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *organisationsRepo) GetOrganisationByID(ctx context.Context, id string) (domain.Organisation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, contact_email, contact_number, branding_color, rto_id, created_at, updated_at
		FROM organisations
		WHERE id = ?`,
		id,
	)

	var (
		o             domain.Organisation
		contactEmail  sql.NullString
		contactNumber sql.NullString
		brandingColor sql.NullString
		rtoID         sql.NullString
		createdAt     int64
		updatedAt     int64
	)
	err := row.Scan(&o.ID, &o.Name, &contactEmail, &contactNumber, &brandingColor, &rtoID, &createdAt, &updatedAt)
	if err != nil {
		return domain.Organisation{}, mapNotFound(err)
	}

	o.ContactEmail = mapNullString(contactEmail)
	o.ContactNumber = mapNullString(contactNumber)
	o.BrandingColor = mapNullString(brandingColor)
	o.RTOID = mapNullString(rtoID)
	o.CreatedAt = fromMillis(createdAt)
	o.UpdatedAt = fromMillis(updatedAt)
	return o, nil
}

func (r *organisationsRepo) UpdateOrganisation(ctx context.Context, o domain.Organisation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE organisations
		SET name = ?, contact_email = ?, contact_number = ?, branding_color = ?, rto_id = ?, updated_at = ?
		WHERE id = ?`,
		o.Name,
		mapStringNull(o.ContactEmail),
		mapStringNull(o.ContactNumber),
		mapStringNull(o.BrandingColor),
		mapStringNull(o.RTOID),
		toMillis(time.Now()),
		o.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *organisationsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organisations`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
