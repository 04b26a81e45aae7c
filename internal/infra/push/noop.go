package push

import (
	"context"

	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

// NoopSender stands in when no broker is configured.
type NoopSender struct{}

var _ shared.PushSender = NoopSender{}

func (NoopSender) Send(context.Context, uuid.UUID, string, string, string) error {
	return nil
}
