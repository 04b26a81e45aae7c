package commands

import (
	"context"
	"log/slog"

	"campus-parking/internal/domain/zone"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/infra"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ZoneCommands interface {
	CreateZone(ctx context.Context, req reqdto.CreateZoneRequest) (*queries.ZoneView, error)
	UpdateZone(ctx context.Context, id uuid.UUID, req reqdto.UpdateZoneRequest) (*queries.ZoneView, error)
	DeleteZone(ctx context.Context, id uuid.UUID) error
}

type zoneUseCaseImpl struct {
	uow         shared.UnitOfWork
	reads       shared.CommandReads
	zoneQueries queries.ZoneQueries
	publisher   shared.EventPublisher
	clock       clock.Clock
}

func NewZoneUseCase(
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	zoneQueries queries.ZoneQueries,
	publisher shared.EventPublisher,
	clock clock.Clock,
) ZoneCommands {
	return &zoneUseCaseImpl{
		uow:         uow,
		reads:       reads,
		zoneQueries: zoneQueries,
		publisher:   publisher,
		clock:       clock,
	}
}

func (u *zoneUseCaseImpl) CreateZone(ctx context.Context, req reqdto.CreateZoneRequest) (*queries.ZoneView, error) {
	z, err := zone.NewZone(req.Name, zone.Type(req.ZoneType), req.TotalSlots, req.Location, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Zones().Create(ctx, tx.DB(), z); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publisher.PublishZoneCreated(shared.ZoneBroadcast{
		ZoneID:     z.ID(),
		Name:       z.Name(),
		ZoneType:   z.ZoneType().String(),
		TotalSlots: z.TotalSlots(),
	})

	return u.zoneQueries.GetZone(ctx, z.ID(), u.clock.Now())
}

func (u *zoneUseCaseImpl) UpdateZone(ctx context.Context, id uuid.UUID, req reqdto.UpdateZoneRequest) (*queries.ZoneView, error) {
	patch := zone.Patch{
		Name:       req.Name,
		TotalSlots: req.TotalSlots,
		Location:   req.Location,
		Active:     req.Active,
	}
	if req.ZoneType != nil {
		t := zone.Type(*req.ZoneType)
		patch.ZoneType = &t
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ZoneForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrZoneNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		z := snap.ToEntity()
		if err := z.Apply(patch, u.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Zones().Update(ctx, tx.DB(), z); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Capacity or status changes shift availability for everyone watching.
	u.broadcastAvailability(ctx, id)

	return u.zoneQueries.GetZone(ctx, id, u.clock.Now())
}

func (u *zoneUseCaseImpl) DeleteZone(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ZoneForUpdate(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrZoneNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		held, err := tx.Reads().ZoneHasSlotHolders(ctx, tx.DB(), id)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if held {
			return errs.ErrZoneInUse
		}

		if err := tx.Zones().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.publisher.PublishZoneDeleted(id)
	return nil
}

func (u *zoneUseCaseImpl) broadcastAvailability(ctx context.Context, zoneID uuid.UUID) {
	now := u.clock.Now()
	available, err := ZoneAvailability(ctx, u.uow, u.reads, zoneID, now, now)
	if err != nil {
		slog.Warn("failed to recompute zone availability", "zone_id", zoneID, "error", err)
		return
	}
	u.publisher.PublishZoneUpdate(zoneID, available)
}
