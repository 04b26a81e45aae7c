package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"campus-parking/internal/infra/db"
	"campus-parking/internal/infra/readstore"
	"campus-parking/internal/infra/writerepo"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted is sufficient: writers contending on one zone serialize on the
// zone row lock taken by CommandReads.ZoneForUpdate, and the retry loop below
// absorbs serialization failures under stricter isolation levels.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	if attempt >= maxRetries {
		return false
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	}
	return false
}

// Exponential backoff with jitter to avoid thundering-herd retries.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	backoff := base << uint(attempt)

	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		jitter := time.Duration(binary.LittleEndian.Uint64(b[:]) % uint64(base))
		backoff += jitter
	}

	return backoff
}

type pgTx struct {
	dbtx pgx.Tx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return writerepo.NewBookingRepository()
}

func (t *pgTx) Zones() shared.ZoneRepository {
	return writerepo.NewZoneRepository()
}

func (t *pgTx) Events() shared.EventRepository {
	return writerepo.NewEventRepository()
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return writerepo.NewNotificationRepository()
}

func (t *pgTx) Reads() shared.CommandReads {
	return readstore.NewCommandReads()
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}
