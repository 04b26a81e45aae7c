package request

type CreateZoneRequest struct {
	Name       string `json:"name" binding:"required"`
	ZoneType   string `json:"zone_type" binding:"required"`
	TotalSlots int    `json:"total_slots" binding:"required,min=1"`
	Location   string `json:"location"`
}

type UpdateZoneRequest struct {
	Name       *string `json:"name,omitempty"`
	ZoneType   *string `json:"zone_type,omitempty"`
	TotalSlots *int    `json:"total_slots,omitempty" binding:"omitempty,min=1"`
	Location   *string `json:"location,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}
