// Package push forwards user notifications to a RabbitMQ topic exchange for
// external delivery channels (mobile push, e-mail digests). Delivery is best
// effort; the booking flow never depends on it.
package push

import (
	"context"
	"encoding/json"
	"time"

	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type message struct {
	UserID  uuid.UUID `json:"user_id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	SentAt  time.Time `json:"sent_at"`
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

var _ shared.PushSender = (*Publisher)(nil)

func NewPublisher(cfg config.PushConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// Send publishes under the routing key "notification.<kind>" so consumers can
// bind to the kinds they care about.
func (p *Publisher) Send(ctx context.Context, userID uuid.UUID, title, msg, kind string) error {
	body, err := json.Marshal(message{
		UserID:  userID,
		Title:   title,
		Message: msg,
		Kind:    kind,
		SentAt:  time.Now(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal push message")
	}

	return p.ch.PublishWithContext(ctx, p.exchange, "notification."+kind, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
