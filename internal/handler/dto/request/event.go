package request

import "github.com/google/uuid"

type CreateEventRequest struct {
	ZoneID         uuid.UUID `json:"zone_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	Date           string    `json:"date" binding:"required" example:"2026-09-01"`
	StartTime      string    `json:"start_time" binding:"required" example:"2026-09-01T09:00:00Z"`
	EndTime        string    `json:"end_time" binding:"required" example:"2026-09-01T17:00:00Z"`
	AllocatedSlots int       `json:"allocated_slots" binding:"required,min=1"`
}

type UpdateEventRequest struct {
	Name           *string `json:"name,omitempty"`
	Date           *string `json:"date,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	AllocatedSlots *int    `json:"allocated_slots,omitempty" binding:"omitempty,min=1"`
}
