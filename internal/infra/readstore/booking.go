package readstore

import (
	"context"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func bookingViewBuilder() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.user_id", "b.zone_id", "z.name",
		"b.date", "b.duration_hours", "b.status",
		"b.qr_code", "b.vehicle_number", "b.start_time", "b.end_time",
		"b.check_in_time", "b.check_out_time", "b.violations", "b.created_at",
	).
		From("bookings b").
		Join("zones z ON z.id = b.zone_id")
}

func applyBookingFilter(b squirrel.SelectBuilder, f queries.BookingFilter) squirrel.SelectBuilder {
	if f.Status != nil {
		b = b.Where(squirrel.Eq{"b.status": f.Status.String()})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"b.date": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"b.date": *f.To})
	}
	return b
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingViewBuilder().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to build booking query", err)
	}

	v, err := scanBookingView(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.Translate("failed to find booking", err)
	}
	return v, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, f queries.BookingFilter) ([]*queries.BookingView, error) {
	b := applyBookingFilter(bookingViewBuilder().Where(squirrel.Eq{"b.user_id": userID}), f).
		OrderBy("b.date DESC", "b.created_at DESC")

	return s.listBookings(ctx, b)
}

func (s *BookingReadStore) ListByZone(ctx context.Context, zoneID uuid.UUID, f queries.BookingFilter) ([]*queries.BookingView, error) {
	b := applyBookingFilter(bookingViewBuilder().Where(squirrel.Eq{"b.zone_id": zoneID}), f).
		OrderBy("b.date DESC", "b.created_at DESC")

	return s.listBookings(ctx, b)
}

func (s *BookingReadStore) listBookings(ctx context.Context, b squirrel.SelectBuilder) ([]*queries.BookingView, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to build booking query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.Translate("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.Translate("failed to scan booking row", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.Translate("failed to iterate booking rows", err)
	}
	return out, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.UserID, &v.ZoneID, &v.ZoneName,
		&v.Date, &v.Duration, &v.Status,
		&v.QRCode, &v.VehicleNumber, &v.StartTime, &v.EndTime,
		&v.CheckInTime, &v.CheckOutTime, &v.Violations, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
