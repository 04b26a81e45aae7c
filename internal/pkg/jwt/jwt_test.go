//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"campus-parking/internal/domain/user"
	"campus-parking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleStaff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), user.RoleStudent)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := jwt.NewService("test-secret", -time.Minute)
		token, err := shortLived.GenerateToken(uuid.New(), user.RoleStudent)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
