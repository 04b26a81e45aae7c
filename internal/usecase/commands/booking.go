package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/domain/user"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/pkg/qrtoken"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// qrTokenAttempts bounds regeneration when an entry token collides with an
// existing row. Collisions are vanishingly rare at 12 random bytes.
const qrTokenAttempts = 3

type BookingCommands interface {
	Reserve(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID, role user.Role) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error
	CheckIn(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error
	CheckOut(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error
}

type bookingUseCaseImpl struct {
	uow          shared.UnitOfWork
	reads        shared.CommandReads
	bookingReads queries.BookingReadStore
	publisher    shared.EventPublisher
	push         shared.PushSender
	cfg          config.BookingConfig
	clock        clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	bookingReads queries.BookingReadStore,
	publisher shared.EventPublisher,
	push shared.PushSender,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:          uow,
		reads:        reads,
		bookingReads: bookingReads,
		publisher:    publisher,
		push:         push,
		cfg:          cfg,
		clock:        clock,
	}
}

// Reserve creates a booking behind the zone's row lock. The capacity check,
// the duplicate check and the insert all observe the same locked state, so
// two concurrent requests for the last slot cannot both succeed.
func (u *bookingUseCaseImpl) Reserve(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
	role user.Role,
) (*queries.BookingView, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var (
		bookingID      uuid.UUID
		confirmTitle   string
		confirmMessage string
		availableAfter int
	)

	for attempt := 0; ; attempt++ {
		token := qrtoken.New()

		err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			z, err := tx.Reads().ZoneForUpdate(ctx, tx.DB(), req.ZoneID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, errs.ErrZoneNotFound)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if !z.Active {
				return errs.ErrZoneNotFound
			}
			if !z.ZoneType.BookableBy(role) {
				return errs.ErrAccessDenied
			}

			b, err := booking.NewBooking(
				userID, z.ID, date,
				req.DurationHours, req.VehicleNumber, token,
				u.cfg.DayStartHour, u.cfg.MaxDurationHours,
				u.clock.Now(),
			)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}

			dayFrom, dayTo := booking.StartOfDay(date), booking.EndOfDay(date)

			held, err := tx.Reads().UserHoldsSlot(ctx, tx.DB(), userID, z.ID, dayFrom, dayTo)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if held {
				return errs.ErrDuplicateBooking
			}

			holders, err := tx.Reads().CountSlotHolders(ctx, tx.DB(), z.ID, dayFrom, dayTo)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			allocated, err := tx.Reads().SumEventAllocations(ctx, tx.DB(), z.ID, booking.StartOfDay(u.clock.Now()))
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if holders+allocated >= z.TotalSlots {
				return errs.ErrNoSlotsAvailable
			}

			id, err := tx.Bookings().Create(ctx, tx.DB(), b)
			if err != nil {
				// Duplicate key means the entry token collided; surface it
				// raw so the outer loop can regenerate and retry.
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return err
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			bookingID = id

			confirmTitle = "Booking Confirmed"
			confirmMessage = fmt.Sprintf("Your booking at %s on %s is confirmed.", z.Name, date.Format(dateLayout))
			n, err := notification.New(userID, &id, confirmTitle, confirmMessage, notification.TypeBooking, u.clock.Now())
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if _, err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}

			availableAfter = queries.AvailableSlots(z.TotalSlots, holders+1, allocated)
			return nil
		})
		if err == nil {
			break
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			if attempt+1 < qrTokenAttempts {
				continue
			}
			return nil, errs.Mark(err, errs.ErrConflict)
		}
		return nil, err
	}

	u.publisher.PublishBookingCreated(shared.BookingBroadcast{
		BookingID: bookingID,
		ZoneID:    req.ZoneID,
		UserID:    userID,
		Status:    booking.StatusActive.String(),
		Date:      req.Date,
	})
	u.publisher.PublishZoneUpdate(req.ZoneID, availableAfter)
	u.notify(ctx, userID, confirmTitle, confirmMessage, notification.TypeBooking)

	view, err := u.bookingReads.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error {
	var (
		zoneID  uuid.UUID
		date    time.Time
		message string
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.ownedBooking(ctx, tx, bookingID, userID, role)
		if err != nil {
			return err
		}

		b := snap.ToEntity()
		if err := b.Cancel(u.clock.Now()); err != nil {
			if snap.Status == booking.StatusCancelled {
				return errs.Mark(err, errs.ErrAlreadyCancelled)
			}
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		message = fmt.Sprintf("Your booking on %s was cancelled.", snap.Date.Format(dateLayout))
		n, err := notification.New(snap.UserID, &bookingID, "Booking Cancelled", message, notification.TypeCancellation, u.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if _, err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		zoneID = snap.ZoneID
		date = snap.Date
		return nil
	})
	if err != nil {
		return err
	}

	u.publisher.PublishBookingCancelled(bookingID, zoneID)
	u.broadcastZoneAvailability(ctx, zoneID, date)
	u.notify(ctx, userID, "Booking Cancelled", message, notification.TypeCancellation)
	return nil
}

func (u *bookingUseCaseImpl) CheckIn(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.ownedBooking(ctx, tx, bookingID, userID, role)
		if err != nil {
			return err
		}

		b := snap.ToEntity()
		if err := b.CheckIn(u.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *bookingUseCaseImpl) CheckOut(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error {
	var (
		zoneID uuid.UUID
		date   time.Time
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.ownedBooking(ctx, tx, bookingID, userID, role)
		if err != nil {
			return err
		}

		b := snap.ToEntity()
		if err := b.CheckOut(u.clock.Now()); err != nil {
			if snap.CheckInTime == nil {
				return errs.Mark(err, errs.ErrCheckInRequired)
			}
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		zoneID = snap.ZoneID
		date = snap.Date
		return nil
	})
	if err != nil {
		return err
	}

	u.broadcastZoneAvailability(ctx, zoneID, date)
	return nil
}

// ownedBooking loads the booking behind its row lock. Concurrent terminal
// transitions on the same booking queue here, so the second one observes the
// first's committed status.
func (u *bookingUseCaseImpl) ownedBooking(
	ctx context.Context,
	tx shared.Tx,
	bookingID, userID uuid.UUID,
	role user.Role,
) (*shared.BookingSnapshot, error) {
	snap, err := tx.Reads().BookingForUpdate(ctx, tx.DB(), bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.UserID != userID && !role.IsAdmin() {
		return nil, errs.ErrAccessDenied
	}
	return snap, nil
}

// broadcastZoneAvailability recomputes availability after a slot was freed and
// pushes the new count. Read outside any long transaction; an observer seeing
// a count one tick stale self-corrects on the next change.
func (u *bookingUseCaseImpl) broadcastZoneAvailability(ctx context.Context, zoneID uuid.UUID, date time.Time) {
	available, err := ZoneAvailability(ctx, u.uow, u.reads, zoneID, date, u.clock.Now())
	if err != nil {
		slog.Warn("failed to recompute zone availability", "zone_id", zoneID, "error", err)
		return
	}
	u.publisher.PublishZoneUpdate(zoneID, available)
}

func (u *bookingUseCaseImpl) notify(ctx context.Context, userID uuid.UUID, title, message string, nType notification.Type) {
	u.publisher.PublishNotification(shared.NotificationBroadcast{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    nType.String(),
	})
	if u.push == nil {
		return
	}
	if err := u.push.Send(ctx, userID, title, message, nType.String()); err != nil {
		slog.Warn("push delivery failed", "user_id", userID, "error", err)
	}
}

// ZoneAvailability derives the free-slot count for one zone and day from the
// write side's reads. Shared by the booking commands and the expiry sweeper.
func ZoneAvailability(
	ctx context.Context,
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	zoneID uuid.UUID,
	date time.Time,
	now time.Time,
) (int, error) {
	var available int
	err := uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		z, err := reads.ZoneByID(ctx, dbtx, zoneID)
		if err != nil {
			return err
		}
		holders, err := reads.CountSlotHolders(ctx, dbtx, zoneID, booking.StartOfDay(date), booking.EndOfDay(date))
		if err != nil {
			return err
		}
		allocated, err := reads.SumEventAllocations(ctx, dbtx, zoneID, booking.StartOfDay(now))
		if err != nil {
			return err
		}
		available = queries.AvailableSlots(z.TotalSlots, holders, allocated)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return available, nil
}
