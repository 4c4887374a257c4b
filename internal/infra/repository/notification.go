package repository

import (
	"context"

	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertNotificationSQL = `
INSERT INTO notifications (id, user_id, message, is_read, created_at)
VALUES ($1, $2, $3, $4, $5)`

const markNotificationReadSQL = `
UPDATE notifications
SET is_read = true
WHERE id = $1 AND user_id = $2`

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error {
	_, err := tx.Exec(ctx, insertNotificationSQL,
		pgconv.UUIDToPgtype(n.ID()),
		pgconv.UUIDToPgtype(n.UserID()),
		n.Message(),
		n.IsRead(),
		pgconv.TimeToPgtype(n.CreatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr("failed to create notification", err)
	}
	return nil
}

// MarkRead is idempotent; a missing row or a different recipient is KindNotFound.
func (r *NotificationRepository) MarkRead(ctx context.Context, tx db.DBTX, id, userID uuid.UUID) error {
	tag, err := tx.Exec(ctx, markNotificationReadSQL, pgconv.UUIDToPgtype(id), pgconv.UUIDToPgtype(userID))
	if err != nil {
		return infra.WrapPgErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "notification "+id.String()+" not found", nil)
	}
	return nil
}
