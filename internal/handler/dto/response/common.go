package response

import "github.com/google/uuid"

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type AvailabilityResponse struct {
	ZoneID         uuid.UUID `json:"zone_id"`
	Date           string    `json:"date"`
	AvailableSlots int       `json:"available_slots"`
}
