package queries

import (
	"context"

	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	uow   shared.UnitOfWork
	reads shared.CommandReads
}

func NewUserQueries(uow shared.UnitOfWork, reads shared.CommandReads) UserQueries {
	return &userQueriesImpl{
		uow:   uow,
		reads: reads,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	var snap *shared.UserSnapshot
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		s, err := q.reads.UserByID(ctx, dbtx, userID)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to get user")
	}

	return &UserView{
		ID:    snap.ID,
		Email: snap.Email,
		Name:  snap.Name,
		Role:  snap.Role.String(),
	}, nil
}
