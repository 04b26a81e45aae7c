//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/pkg/jwt"
	"campus-parking/internal/usecase/commands"
	"campus-parking/tests/common/builder"
	"campus-parking/tests/common/fakes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	jwtService := jwt.NewService("test-secret", time.Hour)

	store := fakes.NewStore()
	u := builder.NewUserBuilder()
	store.SeedUser(u.BuildSnapshot())

	auth := commands.NewAuthUseCase(fakes.NewUnitOfWork(store), fakes.NewReads(store), jwtService)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := auth.Login(ctx, reqdto.LoginRequest{Email: u.Email, Password: u.Password})
		require.NoError(t, err)

		assert.Equal(t, u.ID, result.User.ID)
		assert.Equal(t, u.Role.String(), result.User.Role)

		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, reqdto.LoginRequest{Email: u.Email, Password: "wrong"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, reqdto.LoginRequest{Email: "nobody@campus.example", Password: "password123"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
