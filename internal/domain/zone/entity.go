package zone

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("zone name is required")
	ErrInvalidType     = errors.New("invalid zone type")
	ErrInvalidCapacity = errors.New("total slots must be at least 1")
)

type Zone struct {
	id         uuid.UUID
	name       string
	zoneType   Type
	totalSlots int
	location   string
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewZone(name string, zoneType Type, totalSlots int, location string, now time.Time) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !zoneType.IsValid() {
		return nil, ErrInvalidType
	}
	if totalSlots < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Zone{
		id:         uuid.New(),
		name:       name,
		zoneType:   zoneType,
		totalSlots: totalSlots,
		location:   strings.TrimSpace(location),
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name string,
	zoneType Type,
	totalSlots int,
	location string,
	active bool,
	createdAt, updatedAt time.Time,
) *Zone {
	return &Zone{
		id:         id,
		name:       name,
		zoneType:   zoneType,
		totalSlots: totalSlots,
		location:   location,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

type Patch struct {
	Name       *string
	ZoneType   *Type
	TotalSlots *int
	Location   *string
	Active     *bool
}

// Apply mutates the zone in place. Capacity changes never touch existing
// bookings; availability is recomputed from the new total on the next read.
func (z *Zone) Apply(p Patch, now time.Time) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return ErrEmptyName
		}
		z.name = name
	}
	if p.ZoneType != nil {
		if !p.ZoneType.IsValid() {
			return ErrInvalidType
		}
		z.zoneType = *p.ZoneType
	}
	if p.TotalSlots != nil {
		if *p.TotalSlots < 1 {
			return ErrInvalidCapacity
		}
		z.totalSlots = *p.TotalSlots
	}
	if p.Location != nil {
		z.location = strings.TrimSpace(*p.Location)
	}
	if p.Active != nil {
		z.active = *p.Active
	}
	z.updatedAt = now
	return nil
}

func (z *Zone) ID() uuid.UUID        { return z.id }
func (z *Zone) Name() string         { return z.name }
func (z *Zone) ZoneType() Type       { return z.zoneType }
func (z *Zone) TotalSlots() int      { return z.totalSlots }
func (z *Zone) Location() string     { return z.location }
func (z *Zone) Active() bool         { return z.active }
func (z *Zone) CreatedAt() time.Time { return z.createdAt }
func (z *Zone) UpdatedAt() time.Time { return z.updatedAt }
