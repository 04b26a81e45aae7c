package queries

// AvailableSlots derives the free-slot count for a zone from its capacity,
// the bookings currently holding a slot, and event allocations. Clamped to
// zero; an overcommitted zone never reports negative availability.
func AvailableSlots(totalSlots, slotHolders, eventAllocations int) int {
	available := totalSlots - slotHolders - eventAllocations
	if available < 0 {
		return 0
	}
	return available
}
