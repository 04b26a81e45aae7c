//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"campus-parking/internal/domain/notification"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/shared"
	"campus-parking/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(store *fakes.Store, userID uuid.UUID) *shared.NotificationSnapshot {
	n := &shared.NotificationSnapshot{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Booking Confirmed",
		Message:   "See you tomorrow.",
		Type:      notification.TypeBooking,
		CreatedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
	store.SeedNotification(n)
	return n
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("owner marks their notification read", func(t *testing.T) {
		store := fakes.NewStore()
		userID := uuid.New()
		n := seedNotification(store, userID)

		cmds := commands.NewNotificationUseCase(fakes.NewUnitOfWork(store))
		require.NoError(t, cmds.MarkRead(ctx, n.ID, userID))
		assert.True(t, store.Notifications[0].IsRead)
	})

	t.Run("someone else's notification is off limits", func(t *testing.T) {
		store := fakes.NewStore()
		n := seedNotification(store, uuid.New())

		cmds := commands.NewNotificationUseCase(fakes.NewUnitOfWork(store))
		err := cmds.MarkRead(ctx, n.ID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.False(t, store.Notifications[0].IsRead)
	})

	t.Run("unknown notification", func(t *testing.T) {
		store := fakes.NewStore()
		cmds := commands.NewNotificationUseCase(fakes.NewUnitOfWork(store))

		err := cmds.MarkRead(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrNotificationNotFound)
	})
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()

	store := fakes.NewStore()
	userID := uuid.New()
	seedNotification(store, userID)
	seedNotification(store, userID)
	other := seedNotification(store, uuid.New())

	cmds := commands.NewNotificationUseCase(fakes.NewUnitOfWork(store))
	require.NoError(t, cmds.MarkAllRead(ctx, userID))

	for _, n := range store.Notifications {
		if n.ID == other.ID {
			assert.False(t, n.IsRead, "other users' notifications stay unread")
		} else {
			assert.True(t, n.IsRead)
		}
	}
}
