package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
)

type notificationsRepo struct {
	db dbtx
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, organisation_id, type, action, title, message, record_id, created_by, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.OrganisationID,
		n.Type,
		n.Action,
		n.Title,
		n.Message,
		mapStringNull(n.RecordID),
		n.CreatedBy,
		n.IsRead,
		toMillis(n.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) ListNotifications(
	ctx context.Context,
	organisationID string,
	limit int,
) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organisation_id, type, action, title, message, record_id, created_by, is_read, created_at
		FROM notifications
		WHERE organisation_id = ?
		ORDER BY created_at DESC
		LIMIT ?`,
		organisationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var (
			n         domain.Notification
			recordID  sql.NullString
			createdAt int64
		)
		err := rows.Scan(
			&n.ID,
			&n.OrganisationID,
			&n.Type,
			&n.Action,
			&n.Title,
			&n.Message,
			&recordID,
			&n.CreatedBy,
			&n.IsRead,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}
		n.RecordID = mapNullString(recordID)
		n.CreatedAt = fromMillis(createdAt)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id, organisationID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND organisation_id = ?`,
		id, organisationID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *notificationsRepo) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = 1 AND created_at < ?`,
		toMillis(cutoff),
	)
	return err
}
