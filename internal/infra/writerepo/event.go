package writerepo

import (
	"context"

	"campus-parking/internal/domain/event"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"

	"github.com/google/uuid"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Create(ctx context.Context, dbtx db.DBTX, e *event.Event) (uuid.UUID, error) {
	const query = `
		INSERT INTO events (id, zone_id, name, date, start_time, end_time, allocated_slots, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		e.ID(),
		e.ZoneID(),
		e.Name(),
		e.Date(),
		e.StartTime(),
		e.EndTime(),
		e.AllocatedSlots(),
		e.CreatedBy(),
		e.CreatedAt(),
		e.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.Translate("failed to insert event", err)
	}

	return id, nil
}

func (r *EventRepository) Update(ctx context.Context, dbtx db.DBTX, e *event.Event) error {
	const query = `
		UPDATE events
		SET name = $2,
		    date = $3,
		    start_time = $4,
		    end_time = $5,
		    allocated_slots = $6,
		    updated_at = $7
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		e.ID(),
		e.Name(),
		e.Date(),
		e.StartTime(),
		e.EndTime(),
		e.AllocatedSlots(),
		e.UpdatedAt(),
	)
	if err != nil {
		return infra.Translate("failed to update event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found for update", nil)
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return infra.Translate("failed to delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "event not found for delete", nil)
	}

	return nil
}
