package readstore

import (
	"context"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventReadStore struct {
	pool *pgxpool.Pool
}

func NewEventReadStore(pool *pgxpool.Pool) *EventReadStore {
	return &EventReadStore{pool: pool}
}

// List returns events joined with their zone name, newest date first.
// A nil zoneID lists events across all zones.
func (s *EventReadStore) List(ctx context.Context, zoneID *uuid.UUID) ([]*queries.EventView, error) {
	b := psql.Select(
		"e.id", "e.zone_id", "z.name", "e.name",
		"e.date", "e.start_time", "e.end_time", "e.allocated_slots", "e.created_at",
	).
		From("events e").
		Join("zones z ON z.id = e.zone_id").
		OrderBy("e.date DESC", "e.start_time")
	if zoneID != nil {
		b = b.Where(squirrel.Eq{"e.zone_id": *zoneID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to build event query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.Translate("failed to list events", err)
	}
	defer rows.Close()

	var out []*queries.EventView
	for rows.Next() {
		var v queries.EventView
		err := rows.Scan(
			&v.ID, &v.ZoneID, &v.ZoneName, &v.Name,
			&v.Date, &v.StartTime, &v.EndTime, &v.AllocatedSlots, &v.CreatedAt,
		)
		if err != nil {
			return nil, infra.Translate("failed to scan event row", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.Translate("failed to iterate event rows", err)
	}
	return out, nil
}
