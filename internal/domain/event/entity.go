// Package event models administrative carve-outs of zone capacity for
// scheduled occasions. An allocation reduces the zone's effective availability
// without changing its total slots.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("event name is required")
	ErrInvalidAllocation = errors.New("allocated slots must be at least 1")
	ErrInvalidWindow     = errors.New("event end must be after start")
)

type Event struct {
	id             uuid.UUID
	zoneID         uuid.UUID
	name           string
	date           time.Time
	startTime      time.Time
	endTime        time.Time
	allocatedSlots int
	createdBy      uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

func NewEvent(
	zoneID uuid.UUID,
	name string,
	date, startTime, endTime time.Time,
	allocatedSlots int,
	createdBy uuid.UUID,
	now time.Time,
) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if allocatedSlots < 1 {
		return nil, ErrInvalidAllocation
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidWindow
	}

	return &Event{
		id:             uuid.New(),
		zoneID:         zoneID,
		name:           name,
		date:           date,
		startTime:      startTime,
		endTime:        endTime,
		allocatedSlots: allocatedSlots,
		createdBy:      createdBy,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func Reconstruct(
	id, zoneID uuid.UUID,
	name string,
	date, startTime, endTime time.Time,
	allocatedSlots int,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Event {
	return &Event{
		id:             id,
		zoneID:         zoneID,
		name:           name,
		date:           date,
		startTime:      startTime,
		endTime:        endTime,
		allocatedSlots: allocatedSlots,
		createdBy:      createdBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

type Patch struct {
	Name           *string
	Date           *time.Time
	StartTime      *time.Time
	EndTime        *time.Time
	AllocatedSlots *int
}

func (e *Event) Apply(p Patch, now time.Time) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return ErrEmptyName
		}
		e.name = name
	}
	if p.Date != nil {
		e.date = *p.Date
	}
	if p.StartTime != nil {
		e.startTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.endTime = *p.EndTime
	}
	if !e.endTime.After(e.startTime) {
		return ErrInvalidWindow
	}
	if p.AllocatedSlots != nil {
		if *p.AllocatedSlots < 1 {
			return ErrInvalidAllocation
		}
		e.allocatedSlots = *p.AllocatedSlots
	}
	e.updatedAt = now
	return nil
}

func (e *Event) ID() uuid.UUID        { return e.id }
func (e *Event) ZoneID() uuid.UUID    { return e.zoneID }
func (e *Event) Name() string         { return e.name }
func (e *Event) Date() time.Time      { return e.date }
func (e *Event) StartTime() time.Time { return e.startTime }
func (e *Event) EndTime() time.Time   { return e.endTime }
func (e *Event) AllocatedSlots() int  { return e.allocatedSlots }
func (e *Event) CreatedBy() uuid.UUID { return e.createdBy }
func (e *Event) CreatedAt() time.Time { return e.createdAt }
func (e *Event) UpdatedAt() time.Time { return e.updatedAt }
