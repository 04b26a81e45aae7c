package commands

import (
	"context"

	"campus-parking/internal/infra"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationCommands interface {
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationUseCase(uow shared.UnitOfWork) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow}
}

func (u *notificationUseCaseImpl) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().NotificationByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotificationNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.UserID != userID {
			return errs.ErrAccessDenied
		}

		if err := tx.Notifications().MarkRead(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *notificationUseCaseImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Notifications().MarkAllRead(ctx, tx.DB(), userID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
