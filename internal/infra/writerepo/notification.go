package writerepo

import (
	"context"

	"campus-parking/internal/domain/notification"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, dbtx db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	const query = `
		INSERT INTO notifications (id, user_id, booking_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		n.ID(),
		n.UserID(),
		n.BookingID(),
		n.Title(),
		n.Message(),
		n.NotificationType().String(),
		n.IsRead(),
		n.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.Translate("failed to insert notification", err)
	}

	return id, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return infra.Translate("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "notification not found", nil)
	}

	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return infra.Translate("failed to mark notifications read", err)
	}

	return nil
}
