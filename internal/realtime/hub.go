package realtime

import (
	"encoding/json"
	"log/slog"

	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/metrics"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

// envelope pairs a wire message with an optional target. A nil target goes to
// every connected client; otherwise only to that user's connections.
type envelope struct {
	msg    Message
	target *uuid.UUID
}

// Hub owns the client set. All membership changes and deliveries go through
// its run loop, so no lock guards the map.
type Hub struct {
	cfg     config.RealtimeConfig
	metrics *metrics.Metrics

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}
	stopped    chan struct{}

	clients map[*Client]struct{}
}

func NewHub(cfg config.RealtimeConfig, m *metrics.Metrics) *Hub {
	return &Hub{
		cfg:        cfg,
		metrics:    m,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.ConnectedObservers.Inc()

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.metrics.ConnectedObservers.Dec()
			}

		case env := <-h.broadcast:
			h.deliver(env)

		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
				h.metrics.ConnectedObservers.Dec()
			}
			return
		}
	}
}

// Stop shuts the run loop down and closes every client send channel, which
// unwinds their write pumps.
func (h *Hub) Stop() {
	close(h.done)
	<-h.stopped
}

func (h *Hub) deliver(env envelope) {
	data, err := json.Marshal(env.msg)
	if err != nil {
		slog.Error("failed to marshal broadcast", "type", env.msg.Type, "error", err)
		return
	}

	for c := range h.clients {
		if env.target != nil && c.userID != *env.target {
			continue
		}
		select {
		case c.send <- data:
			h.metrics.BroadcastsSent.Inc()
		default:
			// Client is not draining its buffer. Drop it rather than let one
			// slow reader stall the loop.
			delete(h.clients, c)
			close(c.send)
			h.metrics.ConnectedObservers.Dec()
			h.metrics.BroadcastsDropped.Inc()
		}
	}
}

// publish never blocks a command: when the broadcast queue is full the
// message is dropped and counted.
func (h *Hub) publish(env envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.metrics.BroadcastsDropped.Inc()
	}
}

var _ shared.EventPublisher = (*Hub)(nil)

func (h *Hub) PublishZoneUpdate(zoneID uuid.UUID, availableSlots int) {
	h.publish(envelope{msg: Message{
		Type:    MessageZoneUpdate,
		Payload: ZoneUpdatePayload{ZoneID: zoneID, AvailableSlots: availableSlots},
	}})
}

func (h *Hub) PublishZoneCreated(z shared.ZoneBroadcast) {
	h.publish(envelope{msg: Message{
		Type:    MessageZoneCreated,
		Payload: ZoneCreatedPayload{ZoneID: z.ZoneID, Name: z.Name, ZoneType: z.ZoneType, TotalSlots: z.TotalSlots},
	}})
}

func (h *Hub) PublishZoneDeleted(zoneID uuid.UUID) {
	h.publish(envelope{msg: Message{
		Type:    MessageZoneDeleted,
		Payload: ZoneDeletedPayload{ZoneID: zoneID},
	}})
}

func (h *Hub) PublishBookingCreated(b shared.BookingBroadcast) {
	h.publish(envelope{msg: Message{
		Type:    MessageBookingCreated,
		Payload: BookingCreatedPayload{BookingID: b.BookingID, ZoneID: b.ZoneID, Status: b.Status, Date: b.Date},
	}})
}

func (h *Hub) PublishBookingCancelled(bookingID, zoneID uuid.UUID) {
	h.publish(envelope{msg: Message{
		Type:    MessageBookingCancelled,
		Payload: BookingCancelledPayload{BookingID: bookingID, ZoneID: zoneID},
	}})
}

// PublishNotification goes only to the notified user's connections.
func (h *Hub) PublishNotification(n shared.NotificationBroadcast) {
	target := n.UserID
	h.publish(envelope{
		msg: Message{
			Type:    MessageNotification,
			Payload: NotificationPayload{Title: n.Title, Message: n.Message, Type: n.Type},
		},
		target: &target,
	})
}
