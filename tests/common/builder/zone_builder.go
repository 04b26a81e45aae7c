//go:build unit || e2e

package builder

import (
	"time"

	"campus-parking/internal/domain/zone"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ZoneBuilder struct {
	ID         uuid.UUID
	Name       string
	ZoneType   zone.Type
	TotalSlots int
	Location   string
	Active     bool
	CreatedAt  time.Time
}

func NewZoneBuilder() *ZoneBuilder {
	return &ZoneBuilder{
		ID:         uuid.New(),
		Name:       "North Lot",
		ZoneType:   zone.TypeGeneral,
		TotalSlots: 10,
		Location:   "North Campus",
		Active:     true,
		CreatedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ZoneBuilder) WithType(t zone.Type) *ZoneBuilder {
	b.ZoneType = t
	return b
}

func (b *ZoneBuilder) WithTotalSlots(n int) *ZoneBuilder {
	b.TotalSlots = n
	return b
}

func (b *ZoneBuilder) Inactive() *ZoneBuilder {
	b.Active = false
	return b
}

func (b *ZoneBuilder) BuildSnapshot() *shared.ZoneSnapshot {
	return &shared.ZoneSnapshot{
		ID:         b.ID,
		Name:       b.Name,
		ZoneType:   b.ZoneType,
		TotalSlots: b.TotalSlots,
		Location:   b.Location,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.CreatedAt,
	}
}
