package request

import "github.com/google/uuid"

type CreateBookingRequest struct {
	ZoneID        uuid.UUID `json:"zone_id" binding:"required"`
	Date          string    `json:"date" binding:"required" example:"2026-09-01"`
	DurationHours int       `json:"duration_hours" binding:"required,min=1"`
	VehicleNumber string    `json:"vehicle_number" binding:"required"`
}
