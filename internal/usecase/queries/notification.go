package queries

import (
	"context"

	"github.com/google/uuid"
)

type NotificationReadStore interface {
	ListUnread(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error)
}

type NotificationQueries interface {
	ListUnread(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
}

func NewNotificationQueries(store NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{store: store}
}

// ListUnread returns newest first.
func (q *notificationQueriesImpl) ListUnread(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error) {
	items, err := q.store.ListUnread(ctx, userID)
	if err != nil {
		return nil, markStoreErr(err)
	}
	if items == nil {
		items = []*NotificationView{}
	}
	return items, nil
}
