//go:build unit || e2e

// Package fakes provides in-memory doubles for the write-side ports so the
// command and worker layers can be exercised without Postgres.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/event"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/domain/zone"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store holds all rows behind one mutex. Whole transaction bodies
// additionally serialize on txMu, mirroring how the real unit of work's row
// locks order concurrent writers.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	Zones         map[uuid.UUID]*shared.ZoneSnapshot
	Bookings      map[uuid.UUID]*shared.BookingSnapshot
	Events        map[uuid.UUID]*shared.EventSnapshot
	Notifications []*shared.NotificationSnapshot
	Users         map[uuid.UUID]*shared.UserSnapshot

	// CreateBookingFailures injects duplicate-key errors into the next N
	// booking inserts, simulating entry token collisions.
	CreateBookingFailures int
}

func NewStore() *Store {
	return &Store{
		Zones:    make(map[uuid.UUID]*shared.ZoneSnapshot),
		Bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		Events:   make(map[uuid.UUID]*shared.EventSnapshot),
		Users:    make(map[uuid.UUID]*shared.UserSnapshot),
	}
}

func (s *Store) SeedZone(z *shared.ZoneSnapshot) *Store {
	s.Zones[z.ID] = z
	return s
}

func (s *Store) SeedBooking(b *shared.BookingSnapshot) *Store {
	s.Bookings[b.ID] = b
	return s
}

func (s *Store) SeedEvent(e *shared.EventSnapshot) *Store {
	s.Events[e.ID] = e
	return s
}

func (s *Store) SeedNotification(n *shared.NotificationSnapshot) *Store {
	s.Notifications = append(s.Notifications, n)
	return s
}

func (s *Store) SeedUser(u *shared.UserSnapshot) *Store {
	s.Users[u.ID] = u
	return s
}

func (s *Store) NotificationTitles(userID uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var titles []string
	for _, n := range s.Notifications {
		if n.UserID == userID {
			titles = append(titles, n.Title)
		}
	}
	return titles
}

// UnitOfWork runs transaction bodies directly against the store, one body at
// a time. There is no rollback; tests that exercise failure paths assert on
// returned errors, not on state isolation.
type UnitOfWork struct {
	Store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{Store: store}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.Store.txMu.Lock()
	defer u.Store.txMu.Unlock()
	return fn(ctx, &fakeTx{store: u.Store})
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UnitOfWork) Reads() shared.CommandReads {
	return &Reads{store: u.Store}
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Bookings() shared.BookingRepository { return &bookingRepo{store: t.store} }
func (t *fakeTx) Zones() shared.ZoneRepository       { return &zoneRepo{store: t.store} }
func (t *fakeTx) Events() shared.EventRepository     { return &eventRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads         { return &Reads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &notificationRepo{store: t.store}
}

type bookingRepo struct {
	store *Store
}

func (r *bookingRepo) Create(ctx context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.CreateBookingFailures > 0 {
		r.store.CreateBookingFailures--
		return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "insert booking", nil)
	}
	for _, existing := range r.store.Bookings {
		if existing.QRCode == b.QRCode() {
			return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "insert booking", nil)
		}
	}

	r.store.Bookings[b.ID()] = bookingSnapshot(b)
	return b.ID(), nil
}

func (r *bookingRepo) Update(ctx context.Context, _ db.DBTX, b *booking.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.Bookings[b.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "update booking", nil)
	}
	r.store.Bookings[b.ID()] = bookingSnapshot(b)
	return nil
}

type zoneRepo struct {
	store *Store
}

func (r *zoneRepo) Create(ctx context.Context, _ db.DBTX, z *zone.Zone) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.Zones[z.ID()] = zoneSnapshot(z)
	return z.ID(), nil
}

func (r *zoneRepo) Update(ctx context.Context, _ db.DBTX, z *zone.Zone) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.Zones[z.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "update zone", nil)
	}
	r.store.Zones[z.ID()] = zoneSnapshot(z)
	return nil
}

func (r *zoneRepo) Delete(ctx context.Context, _ db.DBTX, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.Zones[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "delete zone", nil)
	}
	delete(r.store.Zones, id)
	return nil
}

type eventRepo struct {
	store *Store
}

func (r *eventRepo) Create(ctx context.Context, _ db.DBTX, e *event.Event) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.Events[e.ID()] = eventSnapshot(e)
	return e.ID(), nil
}

func (r *eventRepo) Update(ctx context.Context, _ db.DBTX, e *event.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.Events[e.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "update event", nil)
	}
	r.store.Events[e.ID()] = eventSnapshot(e)
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, _ db.DBTX, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.Events[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "delete event", nil)
	}
	delete(r.store.Events, id)
	return nil
}

type notificationRepo struct {
	store *Store
}

func (r *notificationRepo) Create(ctx context.Context, _ db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.Notifications = append(r.store.Notifications, &shared.NotificationSnapshot{
		ID:        n.ID(),
		UserID:    n.UserID(),
		BookingID: n.BookingID(),
		Title:     n.Title(),
		Message:   n.Message(),
		Type:      n.NotificationType(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	})
	return n.ID(), nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, _ db.DBTX, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.Notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return infra.WrapRepoErr(infra.KindNotFound, "mark notification read", nil)
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, _ db.DBTX, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.Notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// Reads mirrors the SQL read queries over the in-memory maps.
type Reads struct {
	store *Store
}

func NewReads(store *Store) *Reads {
	return &Reads{store: store}
}

var _ shared.CommandReads = (*Reads)(nil)

func (r *Reads) ZoneForUpdate(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.ZoneSnapshot, error) {
	return r.ZoneByID(ctx, nil, id)
}

func (r *Reads) ZoneByID(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.ZoneSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	z, ok := r.store.Zones[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find zone", nil)
	}
	cp := *z
	return &cp, nil
}

func (r *Reads) ZoneHasSlotHolders(ctx context.Context, _ db.DBTX, zoneID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, b := range r.store.Bookings {
		if b.ZoneID == zoneID && b.Status.CountsAgainstCapacity() {
			return true, nil
		}
	}
	return false, nil
}

func (r *Reads) BookingForUpdate(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.Bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find booking", nil)
	}
	cp := *b
	return &cp, nil
}

func (r *Reads) CountSlotHolders(ctx context.Context, _ db.DBTX, zoneID uuid.UUID, from, to time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	count := 0
	for _, b := range r.store.Bookings {
		if b.ZoneID == zoneID && b.Status.CountsAgainstCapacity() && withinRange(b.Date, from, to) {
			count++
		}
	}
	return count, nil
}

func (r *Reads) UserHoldsSlot(ctx context.Context, _ db.DBTX, userID, zoneID uuid.UUID, from, to time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, b := range r.store.Bookings {
		if b.UserID == userID && b.ZoneID == zoneID && b.Status.CountsAgainstCapacity() && withinRange(b.Date, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Reads) OverdueBookings(ctx context.Context, _ db.DBTX, before time.Time, limit int) ([]*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*shared.BookingSnapshot
	for _, b := range r.store.Bookings {
		if b.Status.CountsAgainstCapacity() && b.EndTime.Before(before) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Reads) UpcomingBookings(ctx context.Context, _ db.DBTX, from, to time.Time) ([]*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*shared.BookingSnapshot
	for _, b := range r.store.Bookings {
		if !b.Status.CountsAgainstCapacity() {
			continue
		}
		if withinRange(b.StartTime, from, to) || withinRange(b.EndTime, from, to) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *Reads) EventByID(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.EventSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.Events[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find event", nil)
	}
	cp := *e
	return &cp, nil
}

func (r *Reads) SumEventAllocations(ctx context.Context, _ db.DBTX, zoneID uuid.UUID, from time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sum := 0
	for _, e := range r.store.Events {
		if e.ZoneID == zoneID && !e.Date.Before(from) {
			sum += e.AllocatedSlots
		}
	}
	return sum, nil
}

func (r *Reads) NotificationByID(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.NotificationSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.Notifications {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "find notification", nil)
}

func (r *Reads) HasNotificationSince(ctx context.Context, _ db.DBTX, bookingID uuid.UUID, title string, since time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.Notifications {
		if n.BookingID != nil && *n.BookingID == bookingID && n.Title == title && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Reads) UserByEmail(ctx context.Context, _ db.DBTX, email string) (*shared.UserSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "find user", nil)
}

func (r *Reads) UserByID(ctx context.Context, _ db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.Users[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "find user", nil)
	}
	cp := *u
	return &cp, nil
}

func withinRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func bookingSnapshot(b *booking.Booking) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:            b.ID(),
		UserID:        b.UserID(),
		ZoneID:        b.ZoneID(),
		Date:          b.Date(),
		Duration:      b.Duration(),
		Status:        b.Status(),
		QRCode:        b.QRCode(),
		VehicleNumber: b.VehicleNumber(),
		StartTime:     b.StartTime(),
		EndTime:       b.EndTime(),
		CheckInTime:   b.CheckInTime(),
		CheckOutTime:  b.CheckOutTime(),
		Violations:    b.Violations(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func zoneSnapshot(z *zone.Zone) *shared.ZoneSnapshot {
	return &shared.ZoneSnapshot{
		ID:         z.ID(),
		Name:       z.Name(),
		ZoneType:   z.ZoneType(),
		TotalSlots: z.TotalSlots(),
		Location:   z.Location(),
		Active:     z.Active(),
		CreatedAt:  z.CreatedAt(),
		UpdatedAt:  z.UpdatedAt(),
	}
}

func eventSnapshot(e *event.Event) *shared.EventSnapshot {
	return &shared.EventSnapshot{
		ID:             e.ID(),
		ZoneID:         e.ZoneID(),
		Name:           e.Name(),
		Date:           e.Date(),
		StartTime:      e.StartTime(),
		EndTime:        e.EndTime(),
		AllocatedSlots: e.AllocatedSlots(),
		CreatedBy:      e.CreatedBy(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}
