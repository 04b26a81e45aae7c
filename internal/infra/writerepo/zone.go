package writerepo

import (
	"context"

	"campus-parking/internal/domain/zone"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"

	"github.com/google/uuid"
)

type ZoneRepository struct{}

func NewZoneRepository() *ZoneRepository {
	return &ZoneRepository{}
}

func (r *ZoneRepository) Create(ctx context.Context, dbtx db.DBTX, z *zone.Zone) (uuid.UUID, error) {
	const query = `
		INSERT INTO zones (id, name, zone_type, total_slots, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		z.ID(),
		z.Name(),
		z.ZoneType().String(),
		z.TotalSlots(),
		z.Location(),
		z.Active(),
		z.CreatedAt(),
		z.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.Translate("failed to insert zone", err)
	}

	return id, nil
}

func (r *ZoneRepository) Update(ctx context.Context, dbtx db.DBTX, z *zone.Zone) error {
	const query = `
		UPDATE zones
		SET name = $2,
		    zone_type = $3,
		    total_slots = $4,
		    location = $5,
		    active = $6,
		    updated_at = $7
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		z.ID(),
		z.Name(),
		z.ZoneType().String(),
		z.TotalSlots(),
		z.Location(),
		z.Active(),
		z.UpdatedAt(),
	)
	if err != nil {
		return infra.Translate("failed to update zone", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "zone not found for update", nil)
	}

	return nil
}

func (r *ZoneRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return infra.Translate("failed to delete zone", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "zone not found for delete", nil)
	}

	return nil
}
