package readstore

import (
	"context"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationReadStore struct {
	pool *pgxpool.Pool
}

func NewNotificationReadStore(pool *pgxpool.Pool) *NotificationReadStore {
	return &NotificationReadStore{pool: pool}
}

func (s *NotificationReadStore) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool) ([]*queries.NotificationView, error) {
	b := psql.Select("id", "user_id", "booking_id", "title", "message", "type", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if onlyUnread {
		b = b.Where(squirrel.Eq{"is_read": false})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to build notification query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.Translate("failed to list notifications", err)
	}
	defer rows.Close()

	var out []*queries.NotificationView
	for rows.Next() {
		var v queries.NotificationView
		err := rows.Scan(&v.ID, &v.UserID, &v.BookingID, &v.Title, &v.Message, &v.Type, &v.IsRead, &v.CreatedAt)
		if err != nil {
			return nil, infra.Translate("failed to scan notification row", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.Translate("failed to iterate notification rows", err)
	}
	return out, nil
}

func (s *NotificationReadStore) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	var count int
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, infra.Translate("failed to count unread notifications", err)
	}
	return count, nil
}
