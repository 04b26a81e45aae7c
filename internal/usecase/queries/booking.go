package queries

import (
	"context"

	"campus-parking/internal/domain/user"
	"campus-parking/internal/infra"
	"campus-parking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetBooking(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*BookingView, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]*BookingView, error)
	ListZoneBookings(ctx context.Context, zoneID uuid.UUID, filter BookingFilter) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]*BookingView, error)
	ListByZone(ctx context.Context, zoneID uuid.UUID, filter BookingFilter) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
	}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*BookingView, error) {
	b, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Wrap(err, "failed to get booking")
	}

	if b.UserID != requesterID && !role.IsAdmin() {
		return nil, errs.ErrAccessDenied
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListMyBookings(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]*BookingView, error) {
	bookings, err := q.readStore.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}
	return bookings, nil
}

func (q *bookingQueriesImpl) ListZoneBookings(ctx context.Context, zoneID uuid.UUID, filter BookingFilter) ([]*BookingView, error) {
	bookings, err := q.readStore.ListByZone(ctx, zoneID, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list zone bookings")
	}
	return bookings, nil
}
