package commands

import (
	"context"

	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/pkg/jwt"
	"campus-parking/internal/pkg/password"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"
)

type LoginResult struct {
	Token string
	User  *queries.UserView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authUseCaseImpl struct {
	uow        shared.UnitOfWork
	reads      shared.CommandReads
	jwtService *jwt.Service
}

func NewAuthUseCase(uow shared.UnitOfWork, reads shared.CommandReads, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{
		uow:        uow,
		reads:      reads,
		jwtService: jwtService,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	var snap *shared.UserSnapshot
	err := u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		s, err := u.reads.UserByEmail(ctx, dbtx, req.Email)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if err != nil {
		// Not-found collapses into invalid credentials so the response never
		// reveals which accounts exist.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(snap.PasswordHash, req.Password); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := u.jwtService.GenerateToken(snap.ID, snap.Role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		Token: token,
		User: &queries.UserView{
			ID:    snap.ID,
			Email: snap.Email,
			Name:  snap.Name,
			Role:  snap.Role.String(),
		},
	}, nil
}
