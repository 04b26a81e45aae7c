package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/pkg/metrics"
	"campus-parking/internal/usecase/shared"
)

const (
	reminderDayLead   = 24 * time.Hour
	reminderStartLead = time.Hour
	reminderEndLead   = 15 * time.Minute
)

// Reminder nudges users ahead of their booking window: a day before, an hour
// before the start, and shortly before the end when they are checked in but
// have not left. Each nudge fires once per booking; a stored notification
// with the same title since the lead window opened suppresses a refire.
type Reminder struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	push      shared.PushSender
	metrics   *metrics.Metrics
	cfg       config.WorkerConfig
	clock     clock.Clock

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewReminder(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	push shared.PushSender,
	m *metrics.Metrics,
	cfg config.WorkerConfig,
	clock clock.Clock,
) *Reminder {
	return &Reminder{
		uow:       uow,
		publisher: publisher,
		push:      push,
		metrics:   m,
		cfg:       cfg,
		clock:     clock,
		stopCh:    make(chan struct{}),
	}
}

func (w *Reminder) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.cfg.ReminderInterval)
		defer ticker.Stop()

		slog.Info("reminder worker started", "interval", w.cfg.ReminderInterval)
		for {
			select {
			case <-ticker.C:
				if err := w.RemindOnce(ctx); err != nil {
					slog.Error("reminder pass failed", "error", err)
				}
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (w *Reminder) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	slog.Info("reminder worker stopped")
}

type reminderKind struct {
	title string
	// openedAt is when this reminder's lead window opened for the booking.
	// A same-title notification created at or after it means we already fired.
	openedAt time.Time
	message  string
}

func (w *Reminder) RemindOnce(ctx context.Context) error {
	type pending struct {
		snap *shared.BookingSnapshot
		kind reminderKind
	}
	var sent []pending

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = sent[:0]
		now := w.clock.Now()

		snaps, err := tx.Reads().UpcomingBookings(ctx, tx.DB(), now, now.Add(reminderDayLead))
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, snap := range snaps {
			kind, ok := dueReminder(snap, now)
			if !ok {
				continue
			}

			already, err := tx.Reads().HasNotificationSince(ctx, tx.DB(), snap.ID, kind.title, kind.openedAt)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if already {
				continue
			}

			n, err := notification.New(snap.UserID, &snap.ID, kind.title, kind.message, notification.TypeReminder, now)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if _, err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			sent = append(sent, pending{snap: snap, kind: kind})
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range sent {
		w.metrics.RemindersSent.Inc()
		w.publisher.PublishNotification(shared.NotificationBroadcast{
			UserID:  p.snap.UserID,
			Title:   p.kind.title,
			Message: p.kind.message,
			Type:    notification.TypeReminder.String(),
		})
		if w.push != nil {
			if err := w.push.Send(ctx, p.snap.UserID, p.kind.title, p.kind.message, notification.TypeReminder.String()); err != nil {
				slog.Warn("push delivery failed", "user_id", p.snap.UserID, "error", err)
			}
		}
	}
	return nil
}

// dueReminder picks at most one reminder per booking per pass. The closest
// deadline wins: an end-of-window nudge beats a start nudge.
func dueReminder(snap *shared.BookingSnapshot, now time.Time) (reminderKind, bool) {
	if snap.Status == booking.StatusCheckedIn {
		untilEnd := snap.EndTime.Sub(now)
		if untilEnd > 0 && untilEnd <= reminderEndLead {
			return reminderKind{
				title:    "Booking Ending Soon",
				openedAt: snap.EndTime.Add(-reminderEndLead),
				message:  fmt.Sprintf("Your parking window ends at %s. Check out to avoid a violation.", snap.EndTime.Format("15:04")),
			}, true
		}
		return reminderKind{}, false
	}

	untilStart := snap.StartTime.Sub(now)
	switch {
	case untilStart > 0 && untilStart <= reminderStartLead:
		return reminderKind{
			title:    "Booking Starts Soon",
			openedAt: snap.StartTime.Add(-reminderStartLead),
			message:  fmt.Sprintf("Your booking starts at %s.", snap.StartTime.Format("15:04")),
		}, true
	case untilStart > reminderStartLead && untilStart <= reminderDayLead:
		return reminderKind{
			title:    "Booking Tomorrow",
			openedAt: snap.StartTime.Add(-reminderDayLead),
			message:  fmt.Sprintf("You have a booking on %s starting at %s.", snap.Date.Format("2006-01-02"), snap.StartTime.Format("15:04")),
		}, true
	}
	return reminderKind{}, false
}
