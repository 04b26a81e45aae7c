//go:build unit || e2e

package fakes

import (
	"context"
	"sync"

	"campus-parking/internal/infra"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ZoneUpdateCall struct {
	ZoneID         uuid.UUID
	AvailableSlots int
}

type PushCall struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Kind    string
}

// Publisher records every broadcast instead of fanning it out.
type Publisher struct {
	mu sync.Mutex

	ZoneUpdates       []ZoneUpdateCall
	ZonesCreated      []shared.ZoneBroadcast
	ZonesDeleted      []uuid.UUID
	BookingsCreated   []shared.BookingBroadcast
	BookingsCancelled []uuid.UUID
	Notifications     []shared.NotificationBroadcast
}

var _ shared.EventPublisher = (*Publisher)(nil)

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishZoneUpdate(zoneID uuid.UUID, availableSlots int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ZoneUpdates = append(p.ZoneUpdates, ZoneUpdateCall{ZoneID: zoneID, AvailableSlots: availableSlots})
}

func (p *Publisher) PublishZoneCreated(z shared.ZoneBroadcast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ZonesCreated = append(p.ZonesCreated, z)
}

func (p *Publisher) PublishZoneDeleted(zoneID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ZonesDeleted = append(p.ZonesDeleted, zoneID)
}

func (p *Publisher) PublishBookingCreated(b shared.BookingBroadcast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BookingsCreated = append(p.BookingsCreated, b)
}

func (p *Publisher) PublishBookingCancelled(bookingID, zoneID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BookingsCancelled = append(p.BookingsCancelled, bookingID)
}

func (p *Publisher) PublishNotification(n shared.NotificationBroadcast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notifications = append(p.Notifications, n)
}

func (p *Publisher) LastZoneUpdate() (ZoneUpdateCall, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ZoneUpdates) == 0 {
		return ZoneUpdateCall{}, false
	}
	return p.ZoneUpdates[len(p.ZoneUpdates)-1], true
}

// PushRecorder records outbound push sends; Err makes every send fail.
type PushRecorder struct {
	mu    sync.Mutex
	Calls []PushCall
	Err   error
}

var _ shared.PushSender = (*PushRecorder)(nil)

func NewPushRecorder() *PushRecorder {
	return &PushRecorder{}
}

func (p *PushRecorder) Send(ctx context.Context, userID uuid.UUID, title, message, kind string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, PushCall{UserID: userID, Title: title, Message: message, Kind: kind})
	return p.Err
}

// BookingReadStore serves the view the reserve flow returns after commit,
// derived from the same store the write side mutated.
type BookingReadStore struct {
	Store *Store
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func NewBookingReadStore(store *Store) *BookingReadStore {
	return &BookingReadStore{Store: store}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	b, ok := r.Store.Bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find booking view", nil)
	}
	return r.view(b), nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	var out []*queries.BookingView
	for _, b := range r.Store.Bookings {
		if b.UserID == userID {
			out = append(out, r.view(b))
		}
	}
	return out, nil
}

func (r *BookingReadStore) ListByZone(ctx context.Context, zoneID uuid.UUID, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()

	var out []*queries.BookingView
	for _, b := range r.Store.Bookings {
		if b.ZoneID == zoneID {
			out = append(out, r.view(b))
		}
	}
	return out, nil
}

func (r *BookingReadStore) view(b *shared.BookingSnapshot) *queries.BookingView {
	zoneName := ""
	if z, ok := r.Store.Zones[b.ZoneID]; ok {
		zoneName = z.Name
	}
	violations := make([]string, 0, len(b.Violations))
	for _, v := range b.Violations {
		violations = append(violations, v.String())
	}
	return &queries.BookingView{
		ID:            b.ID,
		UserID:        b.UserID,
		ZoneID:        b.ZoneID,
		ZoneName:      zoneName,
		Date:          b.Date,
		Duration:      b.Duration,
		Status:        b.Status.String(),
		QRCode:        b.QRCode,
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CheckInTime:   b.CheckInTime,
		CheckOutTime:  b.CheckOutTime,
		Violations:    violations,
		CreatedAt:     b.CreatedAt,
	}
}
