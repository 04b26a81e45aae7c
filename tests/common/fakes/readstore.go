//go:build unit || e2e

package fakes

import (
	"context"
	"sort"
	"time"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ZoneReadStore derives availability from the store the same way the SQL
// read model does: bookings count against the queried day, event allocations
// from today onward.
type ZoneReadStore struct {
	Store *Store
}

var _ queries.ZoneReadStore = (*ZoneReadStore)(nil)

func NewZoneReadStore(store *Store) *ZoneReadStore {
	return &ZoneReadStore{Store: store}
}

func (r *ZoneReadStore) ListActive(ctx context.Context, dayFrom, dayTo, eventFrom time.Time) ([]*queries.ZoneView, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	var out []*queries.ZoneView
	for _, z := range r.Store.Zones {
		if z.Active {
			out = append(out, r.view(z, dayFrom, dayTo, eventFrom))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ZoneReadStore) FindByID(ctx context.Context, id uuid.UUID, dayFrom, dayTo, eventFrom time.Time) (*queries.ZoneView, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	z, ok := r.Store.Zones[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find zone view", nil)
	}
	return r.view(z, dayFrom, dayTo, eventFrom), nil
}

func (r *ZoneReadStore) view(z *shared.ZoneSnapshot, dayFrom, dayTo, eventFrom time.Time) *queries.ZoneView {
	holders := 0
	for _, b := range r.Store.Bookings {
		if b.ZoneID == z.ID && b.Status.CountsAgainstCapacity() && withinRange(b.Date, dayFrom, dayTo) {
			holders++
		}
	}
	allocated := 0
	for _, e := range r.Store.Events {
		if e.ZoneID == z.ID && !e.Date.Before(eventFrom) {
			allocated += e.AllocatedSlots
		}
	}
	return &queries.ZoneView{
		ID:             z.ID,
		Name:           z.Name,
		ZoneType:       z.ZoneType.String(),
		TotalSlots:     z.TotalSlots,
		AvailableSlots: queries.AvailableSlots(z.TotalSlots, holders, allocated),
		Location:       z.Location,
		Active:         z.Active,
		CreatedAt:      z.CreatedAt,
		UpdatedAt:      z.UpdatedAt,
	}
}
