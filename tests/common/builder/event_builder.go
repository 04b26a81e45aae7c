//go:build unit || e2e

package builder

import (
	"time"

	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventBuilder struct {
	ID             uuid.UUID
	ZoneID         uuid.UUID
	Name           string
	Date           time.Time
	AllocatedSlots int
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		ID:             uuid.New(),
		ZoneID:         uuid.New(),
		Name:           "Open Day",
		Date:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AllocatedSlots: 5,
		CreatedBy:      uuid.New(),
		CreatedAt:      time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func (b *EventBuilder) WithZone(id uuid.UUID) *EventBuilder {
	b.ZoneID = id
	return b
}

func (b *EventBuilder) WithDate(date time.Time) *EventBuilder {
	b.Date = date
	return b
}

func (b *EventBuilder) WithAllocatedSlots(n int) *EventBuilder {
	b.AllocatedSlots = n
	return b
}

func (b *EventBuilder) BuildSnapshot() *shared.EventSnapshot {
	return &shared.EventSnapshot{
		ID:             b.ID,
		ZoneID:         b.ZoneID,
		Name:           b.Name,
		Date:           b.Date,
		StartTime:      b.Date.Add(9 * time.Hour),
		EndTime:        b.Date.Add(17 * time.Hour),
		AllocatedSlots: b.AllocatedSlots,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}
