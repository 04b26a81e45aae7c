package queries

import (
	"context"

	"campus-parking/internal/pkg/errs"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]*NotificationView, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]*NotificationView, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{
		readStore: readStore,
	}
}

func (q *notificationQueriesImpl) ListNotifications(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]*NotificationView, error) {
	notifications, err := q.readStore.ListByUser(ctx, userID, onlyUnread)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := q.readStore.UnreadCount(ctx, userID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}
