//go:build unit

package queries_test

import (
	"context"
	"testing"

	"campus-parking/internal/domain/user"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/queries"
	"campus-parking/tests/common/builder"
	"campus-parking/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBooking(t *testing.T) {
	ctx := context.Background()

	store := fakes.NewStore()
	owner := uuid.New()
	b := builder.NewBookingBuilder().WithUser(owner)
	store.SeedBooking(b.BuildSnapshot())

	q := queries.NewBookingQueries(fakes.NewBookingReadStore(store))

	t.Run("owner sees their booking", func(t *testing.T) {
		view, err := q.GetBooking(ctx, b.ID, owner, user.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, b.ID, view.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := q.GetBooking(ctx, b.ID, uuid.New(), user.RoleStudent)
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		view, err := q.GetBooking(ctx, b.ID, uuid.New(), user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, b.ID, view.ID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := q.GetBooking(ctx, uuid.New(), owner, user.RoleStudent)
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
