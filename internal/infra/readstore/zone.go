package readstore

import (
	"context"
	"time"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneReadStore struct {
	pool *pgxpool.Pool
}

func NewZoneReadStore(pool *pgxpool.Pool) *ZoneReadStore {
	return &ZoneReadStore{pool: pool}
}

// Availability is derived in SQL so a list of N zones stays a single round
// trip. Bookings are counted within the queried day; event allocations are
// summed from eventFrom onward.
const zoneViewQuery = `
	SELECT z.id, z.name, z.zone_type, z.total_slots, z.location, z.active,
	       z.created_at, z.updated_at,
	       GREATEST(0, z.total_slots
	           - (SELECT COUNT(*) FROM bookings b
	              WHERE b.zone_id = z.id
	                AND b.date >= $1 AND b.date <= $2
	                AND b.status IN ('active', 'checked-in'))
	           - (SELECT COALESCE(SUM(e.allocated_slots), 0) FROM events e
	              WHERE e.zone_id = z.id AND e.date >= $3)
	       ) AS available_slots
	FROM zones z`

func (s *ZoneReadStore) ListActive(ctx context.Context, dayFrom, dayTo, eventFrom time.Time) ([]*queries.ZoneView, error) {
	query := zoneViewQuery + `
	WHERE z.active
	ORDER BY z.name`

	rows, err := s.pool.Query(ctx, query, dayFrom, dayTo, eventFrom)
	if err != nil {
		return nil, infra.Translate("failed to list zones", err)
	}
	defer rows.Close()

	var out []*queries.ZoneView
	for rows.Next() {
		v, err := scanZoneView(rows)
		if err != nil {
			return nil, infra.Translate("failed to scan zone row", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.Translate("failed to iterate zone rows", err)
	}
	return out, nil
}

func (s *ZoneReadStore) FindByID(ctx context.Context, id uuid.UUID, dayFrom, dayTo, eventFrom time.Time) (*queries.ZoneView, error) {
	query := zoneViewQuery + `
	WHERE z.id = $4`

	v, err := scanZoneView(s.pool.QueryRow(ctx, query, dayFrom, dayTo, eventFrom, id))
	if err != nil {
		return nil, infra.Translate("failed to find zone", err)
	}
	return v, nil
}

func scanZoneView(row pgx.Row) (*queries.ZoneView, error) {
	var v queries.ZoneView
	err := row.Scan(
		&v.ID, &v.Name, &v.ZoneType, &v.TotalSlots, &v.Location, &v.Active,
		&v.CreatedAt, &v.UpdatedAt, &v.AvailableSlots,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
