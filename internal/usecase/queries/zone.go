package queries

import (
	"context"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/infra"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ZoneQueries interface {
	ListZones(ctx context.Context, date time.Time) ([]*ZoneView, error)
	GetZone(ctx context.Context, id uuid.UUID, date time.Time) (*ZoneView, error)
	AvailableSlots(ctx context.Context, id uuid.UUID, date time.Time) (int, error)
}

type ZoneReadStore interface {
	ListActive(ctx context.Context, dayFrom, dayTo, eventFrom time.Time) ([]*ZoneView, error)
	FindByID(ctx context.Context, id uuid.UUID, dayFrom, dayTo, eventFrom time.Time) (*ZoneView, error)
}

type zoneQueriesImpl struct {
	readStore ZoneReadStore
	clock     clock.Clock
}

func NewZoneQueries(readStore ZoneReadStore, clock clock.Clock) ZoneQueries {
	return &zoneQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *zoneQueriesImpl) ListZones(ctx context.Context, date time.Time) ([]*ZoneView, error) {
	dayFrom, dayTo, eventFrom := q.window(date)
	zones, err := q.readStore.ListActive(ctx, dayFrom, dayTo, eventFrom)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list zones")
	}
	return zones, nil
}

func (q *zoneQueriesImpl) GetZone(ctx context.Context, id uuid.UUID, date time.Time) (*ZoneView, error) {
	dayFrom, dayTo, eventFrom := q.window(date)
	z, err := q.readStore.FindByID(ctx, id, dayFrom, dayTo, eventFrom)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrZoneNotFound)
		}
		return nil, errs.Wrap(err, "failed to get zone")
	}
	return z, nil
}

func (q *zoneQueriesImpl) AvailableSlots(ctx context.Context, id uuid.UUID, date time.Time) (int, error) {
	z, err := q.GetZone(ctx, id, date)
	if err != nil {
		return 0, err
	}
	return z.AvailableSlots, nil
}

// Bookings count against the queried day only. Event allocations are summed
// from the start of today onward no matter which day is queried.
func (q *zoneQueriesImpl) window(date time.Time) (dayFrom, dayTo, eventFrom time.Time) {
	return booking.StartOfDay(date), booking.EndOfDay(date), booking.StartOfDay(q.clock.Now())
}
