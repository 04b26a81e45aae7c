// Package worker holds the background loops: the expiry sweeper that closes
// out overdue bookings and the reminder loop that nudges users around their
// booking window.
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
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Sweeper expires bookings whose window has passed without a checkout. Each
// batch runs in one transaction; the SKIP LOCKED scan lets overlapping sweeps
// and user cancellations proceed without blocking on each other.
type Sweeper struct {
	uow       shared.UnitOfWork
	reads     shared.CommandReads
	publisher shared.EventPublisher
	push      shared.PushSender
	metrics   *metrics.Metrics
	cfg       config.WorkerConfig
	clock     clock.Clock

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewSweeper(
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	publisher shared.EventPublisher,
	push shared.PushSender,
	m *metrics.Metrics,
	cfg config.WorkerConfig,
	clock clock.Clock,
) *Sweeper {
	return &Sweeper{
		uow:       uow,
		reads:     reads,
		publisher: publisher,
		push:      push,
		metrics:   m,
		cfg:       cfg,
		clock:     clock,
		stopCh:    make(chan struct{}),
	}
}

func (w *Sweeper) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.cfg.SweepInterval)
		defer ticker.Stop()

		slog.Info("expiry sweeper started", "interval", w.cfg.SweepInterval)
		for {
			select {
			case <-ticker.C:
				if err := w.SweepOnce(ctx); err != nil {
					slog.Error("sweep failed", "error", err)
				}
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (w *Sweeper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	slog.Info("expiry sweeper stopped")
}

type expiredBooking struct {
	userID    uuid.UUID
	zoneID    uuid.UUID
	date      time.Time
	violation booking.ViolationKind
	message   string
}

// SweepOnce expires one batch of overdue bookings. It keeps sweeping until a
// batch comes back short, so a backlog after downtime drains in one call.
func (w *Sweeper) SweepOnce(ctx context.Context) error {
	for {
		n, err := w.sweepBatch(ctx)
		if err != nil {
			return err
		}
		if n < w.cfg.SweepBatchSize {
			return nil
		}
	}
}

func (w *Sweeper) sweepBatch(ctx context.Context) (int, error) {
	var expired []expiredBooking
	var scanned int

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = expired[:0]
		now := w.clock.Now()

		snaps, err := tx.Reads().OverdueBookings(ctx, tx.DB(), now, w.cfg.SweepBatchSize)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		scanned = len(snaps)

		for _, snap := range snaps {
			b := snap.ToEntity()
			kind, err := b.Expire(now)
			if err != nil {
				// Status changed between scan and lock; leave it alone.
				continue
			}
			if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}

			msg := fmt.Sprintf("Your booking on %s expired without checkout and was recorded as a violation (%s).",
				snap.Date.Format("2006-01-02"), kind)
			n, err := notification.New(snap.UserID, &snap.ID, "Booking Expired", msg, notification.TypeViolation, now)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if _, err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}

			expired = append(expired, expiredBooking{
				userID:    snap.UserID,
				zoneID:    snap.ZoneID,
				date:      snap.Date,
				violation: kind,
				message:   msg,
			})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	w.announce(ctx, expired)
	return scanned, nil
}

// announce pushes the freed capacity and the violation notifications after
// commit. Availability is broadcast once per zone, not once per booking.
func (w *Sweeper) announce(ctx context.Context, expired []expiredBooking) {
	if len(expired) == 0 {
		return
	}

	type zoneDay struct {
		zoneID uuid.UUID
		day    time.Time
	}
	seen := make(map[zoneDay]struct{})

	for _, e := range expired {
		w.metrics.BookingsExpired.Inc()

		w.publisher.PublishNotification(shared.NotificationBroadcast{
			UserID:  e.userID,
			Title:   "Booking Expired",
			Message: e.message,
			Type:    notification.TypeViolation.String(),
		})
		if w.push != nil {
			if err := w.push.Send(ctx, e.userID, "Booking Expired", e.message, notification.TypeViolation.String()); err != nil {
				slog.Warn("push delivery failed", "user_id", e.userID, "error", err)
			}
		}

		key := zoneDay{zoneID: e.zoneID, day: booking.StartOfDay(e.date)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		available, err := commands.ZoneAvailability(ctx, w.uow, w.reads, e.zoneID, e.date, w.clock.Now())
		if err != nil {
			slog.Warn("failed to recompute zone availability", "zone_id", e.zoneID, "error", err)
			continue
		}
		w.publisher.PublishZoneUpdate(e.zoneID, available)
	}
}
