//go:build unit

package event_test

import (
	"testing"
	"time"

	"campus-parking/internal/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	day   = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	start = day.Add(9 * time.Hour)
	end   = day.Add(17 * time.Hour)
)

func TestNewEvent(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		e, err := event.NewEvent(uuid.New(), "  Open Day  ", day, start, end, 15, uuid.New(), now)
		require.NoError(t, err)
		require.NotNil(t, e)

		assert.NotEqual(t, uuid.Nil, e.ID())
		assert.Equal(t, "Open Day", e.Name())
		assert.Equal(t, 15, e.AllocatedSlots())
	})

	cases := []struct {
		name      string
		eventName string
		start     time.Time
		end       time.Time
		allocated int
		errIs     error
	}{
		{"empty name", "", start, end, 10, event.ErrEmptyName},
		{"zero allocation", "Open Day", start, end, 0, event.ErrInvalidAllocation},
		{"end before start", "Open Day", end, start, 10, event.ErrInvalidWindow},
		{"end equals start", "Open Day", start, start, 10, event.ErrInvalidWindow},
		{"single slot allocation", "Open Day", start, end, 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := event.NewEvent(uuid.New(), tc.eventName, day, tc.start, tc.end, tc.allocated, uuid.New(), now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEventApply(t *testing.T) {
	base := func(t *testing.T) *event.Event {
		t.Helper()
		e, err := event.NewEvent(uuid.New(), "Open Day", day, start, end, 15, uuid.New(), now)
		require.NoError(t, err)
		return e
	}

	t.Run("shrink allocation", func(t *testing.T) {
		e := base(t)
		five := 5
		require.NoError(t, e.Apply(event.Patch{AllocatedSlots: &five}, now))
		assert.Equal(t, 5, e.AllocatedSlots())
	})

	t.Run("moving end before start is rejected", func(t *testing.T) {
		e := base(t)
		badEnd := start.Add(-time.Hour)
		assert.ErrorIs(t, e.Apply(event.Patch{EndTime: &badEnd}, now), event.ErrInvalidWindow)
	})

	t.Run("window can move as a pair", func(t *testing.T) {
		e := base(t)
		newStart := start.Add(2 * time.Hour)
		newEnd := end.Add(2 * time.Hour)
		require.NoError(t, e.Apply(event.Patch{StartTime: &newStart, EndTime: &newEnd}, now))
		assert.Equal(t, newStart, e.StartTime())
		assert.Equal(t, newEnd, e.EndTime())
	})

	t.Run("zero allocation is rejected", func(t *testing.T) {
		e := base(t)
		zero := 0
		assert.ErrorIs(t, e.Apply(event.Patch{AllocatedSlots: &zero}, now), event.ErrInvalidAllocation)
		assert.Equal(t, 15, e.AllocatedSlots())
	})
}
