package commands

import (
	"context"
	"log/slog"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/event"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/infra"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventCommands interface {
	CreateEvent(ctx context.Context, req reqdto.CreateEventRequest, createdBy uuid.UUID) (uuid.UUID, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req reqdto.UpdateEventRequest) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type eventUseCaseImpl struct {
	uow       shared.UnitOfWork
	reads     shared.CommandReads
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewEventUseCase(
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	publisher shared.EventPublisher,
	clock clock.Clock,
) EventCommands {
	return &eventUseCaseImpl{
		uow:       uow,
		reads:     reads,
		publisher: publisher,
		clock:     clock,
	}
}

// CreateEvent carves allocated slots out of the zone's capacity. The
// allocation must fit within the headroom left by current slot holders and
// existing allocations, checked behind the zone row lock.
func (u *eventUseCaseImpl) CreateEvent(ctx context.Context, req reqdto.CreateEventRequest, createdBy uuid.UUID) (uuid.UUID, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	e, err := event.NewEvent(req.ZoneID, req.Name, booking.StartOfDay(date), startTime, endTime, req.AllocatedSlots, createdBy, u.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := u.checkHeadroom(ctx, tx, req.ZoneID, e.Date(), e.AllocatedSlots(), 0); err != nil {
			return err
		}
		if _, err := tx.Events().Create(ctx, tx.DB(), e); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	u.broadcastAvailability(ctx, req.ZoneID, e.Date())
	return e.ID(), nil
}

func (u *eventUseCaseImpl) UpdateEvent(ctx context.Context, id uuid.UUID, req reqdto.UpdateEventRequest) error {
	patch, err := eventPatch(req)
	if err != nil {
		return err
	}

	var zoneID uuid.UUID
	var date time.Time

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().EventByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrEventNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		e := snap.ToEntity()
		if err := e.Apply(patch, u.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		// The event's own current allocation does not count against itself.
		if err := u.checkHeadroom(ctx, tx, snap.ZoneID, e.Date(), e.AllocatedSlots(), snap.AllocatedSlots); err != nil {
			return err
		}
		if err := tx.Events().Update(ctx, tx.DB(), e); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		zoneID = snap.ZoneID
		date = e.Date()
		return nil
	})
	if err != nil {
		return err
	}

	u.broadcastAvailability(ctx, zoneID, date)
	return nil
}

func (u *eventUseCaseImpl) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	var zoneID uuid.UUID
	var date time.Time

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().EventByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrEventNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Events().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		zoneID = snap.ZoneID
		date = snap.Date
		return nil
	})
	if err != nil {
		return err
	}

	u.broadcastAvailability(ctx, zoneID, date)
	return nil
}

func (u *eventUseCaseImpl) checkHeadroom(
	ctx context.Context,
	tx shared.Tx,
	zoneID uuid.UUID,
	date time.Time,
	allocated, ownAllocation int,
) error {
	z, err := tx.Reads().ZoneForUpdate(ctx, tx.DB(), zoneID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrZoneNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	holders, err := tx.Reads().CountSlotHolders(ctx, tx.DB(), zoneID, booking.StartOfDay(date), booking.EndOfDay(date))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	existing, err := tx.Reads().SumEventAllocations(ctx, tx.DB(), zoneID, booking.StartOfDay(u.clock.Now()))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if holders+existing-ownAllocation+allocated > z.TotalSlots {
		return errs.ErrEventOverAllocated
	}
	return nil
}

func (u *eventUseCaseImpl) broadcastAvailability(ctx context.Context, zoneID uuid.UUID, date time.Time) {
	available, err := ZoneAvailability(ctx, u.uow, u.reads, zoneID, date, u.clock.Now())
	if err != nil {
		slog.Warn("failed to recompute zone availability", "zone_id", zoneID, "error", err)
		return
	}
	u.publisher.PublishZoneUpdate(zoneID, available)
}

func eventPatch(req reqdto.UpdateEventRequest) (event.Patch, error) {
	patch := event.Patch{
		Name:           req.Name,
		AllocatedSlots: req.AllocatedSlots,
	}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return event.Patch{}, errs.Mark(err, errs.ErrDomainValidation)
		}
		day := booking.StartOfDay(d)
		patch.Date = &day
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return event.Patch{}, errs.Mark(err, errs.ErrDomainValidation)
		}
		patch.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return event.Patch{}, errs.Mark(err, errs.ErrDomainValidation)
		}
		patch.EndTime = &t
	}
	return patch, nil
}
