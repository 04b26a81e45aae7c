package queries

import (
	"context"

	"campus-parking/internal/pkg/errs"

	"github.com/google/uuid"
)

type EventQueries interface {
	ListEvents(ctx context.Context, zoneID *uuid.UUID) ([]*EventView, error)
}

type EventReadStore interface {
	List(ctx context.Context, zoneID *uuid.UUID) ([]*EventView, error)
}

type eventQueriesImpl struct {
	readStore EventReadStore
}

func NewEventQueries(readStore EventReadStore) EventQueries {
	return &eventQueriesImpl{
		readStore: readStore,
	}
}

func (q *eventQueriesImpl) ListEvents(ctx context.Context, zoneID *uuid.UUID) ([]*EventView, error) {
	events, err := q.readStore.List(ctx, zoneID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list events")
	}
	return events, nil
}
