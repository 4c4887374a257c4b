package readstore

import (
	"context"

	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/pgconv"
	"localscout-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getNotificationSQL = `
SELECT id, user_id, message, is_read, created_at
FROM notifications
WHERE id = $1`

const listUnreadNotificationsSQL = `
SELECT id, user_id, message, is_read, created_at
FROM notifications
WHERE user_id = $1 AND is_read = false
ORDER BY created_at DESC, id DESC
LIMIT $2`

// Unread lists are shown in a dropdown; older unread items stay in storage.
const maxUnreadNotifications = 50

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

func (r *NotificationReadStore) LoadAggregate(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var (
		nid, userID pgtype.UUID
		message     string
		isRead      bool
		createdAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getNotificationSQL, pgconv.UUIDToPgtype(id)).
		Scan(&nid, &userID, &message, &isRead, &createdAt)
	if err != nil {
		return nil, infra.WrapPgErr("failed to load notification", err)
	}
	return notification.Reconstruct(
		pgconv.UUIDFromPgtype(nid),
		pgconv.UUIDFromPgtype(userID),
		message,
		isRead,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *NotificationReadStore) ListUnread(ctx context.Context, userID uuid.UUID) ([]*queries.NotificationView, error) {
	rows, err := r.db.Query(ctx, listUnreadNotificationsSQL, pgconv.UUIDToPgtype(userID), maxUnreadNotifications)
	if err != nil {
		return nil, infra.WrapPgErr("failed to list unread notifications", err)
	}
	defer rows.Close()

	items := make([]*queries.NotificationView, 0)
	for rows.Next() {
		var (
			id, recipient pgtype.UUID
			createdAt     pgtype.Timestamptz
			view          queries.NotificationView
		)
		if err := rows.Scan(&id, &recipient, &view.Message, &view.IsRead, &createdAt); err != nil {
			return nil, infra.WrapPgErr("failed to scan notification row", err)
		}
		view.ID = pgconv.UUIDFromPgtype(id)
		view.UserID = pgconv.UUIDFromPgtype(recipient)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate notifications", err)
	}
	return items, nil
}
