package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle  = errors.New("notification title is required")
	ErrInvalidType = errors.New("invalid notification type")
)

// Notification is append-mostly: created as a side effect of ledger mutations,
// the only permitted update is the read flag.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	bookingID *uuid.UUID
	title     string
	message   string
	nType     Type
	isRead    bool
	createdAt time.Time
}

func New(userID uuid.UUID, bookingID *uuid.UUID, title, message string, nType Type, now time.Time) (*Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !nType.IsValid() {
		return nil, ErrInvalidType
	}

	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		bookingID: bookingID,
		title:     title,
		message:   message,
		nType:     nType,
		createdAt: now,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	bookingID *uuid.UUID,
	title, message string,
	nType Type,
	isRead bool,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		bookingID: bookingID,
		title:     title,
		message:   message,
		nType:     nType,
		isRead:    isRead,
		createdAt: createdAt,
	}
}

func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) ID() uuid.UUID          { return n.id }
func (n *Notification) UserID() uuid.UUID      { return n.userID }
func (n *Notification) BookingID() *uuid.UUID  { return n.bookingID }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Message() string        { return n.message }
func (n *Notification) NotificationType() Type { return n.nType }
func (n *Notification) IsRead() bool           { return n.isRead }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }
