package writerepo

import (
	"context"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, user_id, zone_id, date, duration_hours, status,
			qr_code, vehicle_number, start_time, end_time, violations,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13
		)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		b.ID(),
		b.UserID(),
		b.ZoneID(),
		b.Date(),
		b.Duration(),
		b.Status().String(),
		b.QRCode(),
		b.VehicleNumber(),
		b.StartTime(),
		b.EndTime(),
		violationStrings(b.Violations()),
		b.CreatedAt(),
		b.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.Translate("failed to insert booking", err)
	}

	return id, nil
}

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2,
		    check_in_time = $3,
		    check_out_time = $4,
		    violations = $5,
		    updated_at = $6
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		b.ID(),
		b.Status().String(),
		b.CheckInTime(),
		b.CheckOutTime(),
		violationStrings(b.Violations()),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.Translate("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "booking not found for update", nil)
	}

	return nil
}

func violationStrings(vs []booking.ViolationKind) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
