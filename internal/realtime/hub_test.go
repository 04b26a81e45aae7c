//go:build unit

package realtime_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/metrics"
	"campus-parking/internal/realtime"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const readWait = 2 * time.Second

type HubTestSuite struct {
	suite.Suite
	hub    *realtime.Hub
	server *httptest.Server

	// userID the next accepted connection is registered under.
	nextUser uuid.UUID
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}

func (s *HubTestSuite) SetupTest() {
	cfg := config.RealtimeConfig{
		HeartbeatInterval: time.Second,
		WriteTimeout:      time.Second,
		SendBufferSize:    16,
	}
	s.hub = realtime.NewHub(cfg, metrics.NewWith(prometheus.NewRegistry(), "test"))
	go s.hub.Run()

	upgrader := websocket.Upgrader{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(s.T(), err)
		realtime.NewClient(s.hub, conn, s.nextUser).Serve()
	}))
}

func (s *HubTestSuite) TearDownTest() {
	s.server.Close()
	s.hub.Stop()
}

func (s *HubTestSuite) dial(userID uuid.UUID) *websocket.Conn {
	s.nextUser = userID
	url := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)

	// Serve registers through the hub's run loop; give it a beat so the
	// client does not miss a broadcast published right after dialing.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func (s *HubTestSuite) readMessage(conn *websocket.Conn) realtime.Message {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readWait)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var msg realtime.Message
	s.Require().NoError(json.Unmarshal(data, &msg))
	return msg
}

func (s *HubTestSuite) TestZoneUpdateReachesAllObservers() {
	first := s.dial(uuid.New())
	defer first.Close()
	second := s.dial(uuid.New())
	defer second.Close()

	zoneID := uuid.New()
	s.hub.PublishZoneUpdate(zoneID, 7)

	for _, conn := range []*websocket.Conn{first, second} {
		msg := s.readMessage(conn)
		s.Equal(realtime.MessageZoneUpdate, msg.Type)

		payload := msg.Payload.(map[string]any)
		s.Equal(zoneID.String(), payload["zone_id"])
		s.Equal(float64(7), payload["available_slots"])
	}
}

func (s *HubTestSuite) TestNotificationTargetsOneUser() {
	alice := uuid.New()
	aliceConn := s.dial(alice)
	defer aliceConn.Close()
	bobConn := s.dial(uuid.New())
	defer bobConn.Close()

	s.hub.PublishNotification(shared.NotificationBroadcast{
		UserID:  alice,
		Title:   "Booking Confirmed",
		Message: "See you tomorrow.",
		Type:    "booking",
	})
	// A follow-up broadcast to everyone proves the notification was skipped
	// for the other user rather than still in flight.
	s.hub.PublishZoneUpdate(uuid.New(), 3)

	msg := s.readMessage(aliceConn)
	s.Equal(realtime.MessageNotification, msg.Type)
	payload := msg.Payload.(map[string]any)
	s.Equal("Booking Confirmed", payload["title"])

	s.Equal(realtime.MessageZoneUpdate, s.readMessage(aliceConn).Type)
	s.Equal(realtime.MessageZoneUpdate, s.readMessage(bobConn).Type, "first frame for the other user is the zone update")
}

func (s *HubTestSuite) TestBookingLifecycleMessages() {
	conn := s.dial(uuid.New())
	defer conn.Close()

	bookingID, zoneID := uuid.New(), uuid.New()
	s.hub.PublishBookingCreated(shared.BookingBroadcast{
		BookingID: bookingID,
		ZoneID:    zoneID,
		UserID:    uuid.New(),
		Status:    "active",
		Date:      "2026-09-01",
	})
	s.hub.PublishBookingCancelled(bookingID, zoneID)
	s.hub.PublishZoneDeleted(zoneID)

	s.Equal(realtime.MessageBookingCreated, s.readMessage(conn).Type)
	s.Equal(realtime.MessageBookingCancelled, s.readMessage(conn).Type)

	msg := s.readMessage(conn)
	s.Equal(realtime.MessageZoneDeleted, msg.Type)
	s.Equal(zoneID.String(), msg.Payload.(map[string]any)["zone_id"])
}

func (s *HubTestSuite) TestStopClosesConnections() {
	conn := s.dial(uuid.New())
	defer conn.Close()

	s.hub.Stop()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readWait)))
	_, _, err := conn.ReadMessage()
	s.Error(err, "server side closed the connection")

	// TearDownTest stops the hub again; restart a fresh one so it has
	// something to stop.
	s.restartHub()
}

func (s *HubTestSuite) TestConnectionAfterStopIsClosed() {
	s.hub.Stop()

	conn := s.dial(uuid.New())
	defer conn.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readWait)))
	_, _, err := conn.ReadMessage()
	s.Error(err, "a client registering after shutdown is closed outright")

	s.restartHub()
}

func (s *HubTestSuite) restartHub() {
	s.hub = realtime.NewHub(config.RealtimeConfig{
		HeartbeatInterval: time.Second,
		WriteTimeout:      time.Second,
		SendBufferSize:    16,
	}, metrics.NewWith(prometheus.NewRegistry(), "test"))
	go s.hub.Run()
}
