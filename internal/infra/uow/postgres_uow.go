package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"parkbroker/internal/infra/db"
	"parkbroker/internal/infra/readstore"
	"parkbroker/internal/infra/repository"
	"parkbroker/internal/pkg/config"
	"parkbroker/internal/pkg/errs"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
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

	// errSpotLockBusy marks a failed advisory-lock grab; it is retryable so
	// contending writers back off instead of failing outright.
	errSpotLockBusy = errs.New("spot lock held by another transaction")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	maxRetries int
	baseWait   time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.LedgerConfig) shared.UnitOfWork {
	return &PostgresUoW{
		pool:       pool,
		maxRetries: cfg.MaxRetries,
		baseWait:   cfg.RetryBackoff,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithSpotLock serializes writers on one spot's booking set. The advisory
// lock is transaction-scoped, so it releases on commit or rollback; a busy
// lock aborts the attempt and goes through the shared retry loop.
func (u *PostgresUoW) WithSpotLock(ctx context.Context, spotID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	err := u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx shared.Tx) error {
		if err := acquireSpotLock(ctx, tx, spotID); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
	if err != nil && errors.Is(err, errSpotLockBusy) {
		return errs.Mark(err, shared.ErrSpotContended)
	}
	return err
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

func acquireSpotLock(ctx context.Context, tx shared.Tx, spotID uuid.UUID) error {
	// Two lock keys derived from the uuid halves; collision just means two
	// spots share a queue, which is harmless.
	hi := int32(binary.BigEndian.Uint32(spotID[0:4]))
	lo := int32(binary.BigEndian.Uint32(spotID[4:8]))

	var acquired bool
	err := tx.(*pgTx).dbtx.QueryRow(ctx,
		`SELECT pg_try_advisory_xact_lock($1, $2)`, hi, lo,
	).Scan(&acquired)
	if err != nil {
		return errs.Wrap(err, "failed to acquire spot lock")
	}
	if !acquired {
		return errSpotLockBusy
	}
	return nil
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	maxRetries := u.maxRetries
	base := u.baseWait

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
			if attempt == maxRetries && isRetryableError(err) {
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
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	if errors.Is(err, errSpotLockBusy) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	spotRepo         shared.SpotRepository
	bookingRepo      shared.BookingRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) Spots() shared.SpotRepository {
	if t.spotRepo == nil {
		t.spotRepo = repository.NewSpotRepository(t.dbtx)
	}
	return t.spotRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	spotStore    *readstore.SpotReadStore
	bookingStore *readstore.BookingReadStore
}

func (r *commandReads) SpotByID(ctx context.Context, id uuid.UUID) (*shared.SpotSnapshot, error) {
	if r.spotStore == nil {
		r.spotStore = readstore.NewSpotReadStore(r.dbtx)
	}

	s, err := r.spotStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.SpotSnapshot{
		ID:                s.ID,
		OwnerID:           s.OwnerID,
		Address:           s.Address,
		Description:       s.Description,
		ImageURL:          s.ImageURL,
		Latitude:          s.Latitude,
		Longitude:         s.Longitude,
		HourlyRateCents:   s.HourlyRateCents,
		AvailabilityStart: s.AvailabilityStart,
		AvailabilityEnd:   s.AvailabilityEnd,
		IsAvailable:       s.IsAvailable,
		MaxVehicleSize:    s.MaxVehicleSize,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	return snapshot, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}

	b, err := r.bookingStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.BookingSnapshot{
		ID:            b.ID,
		SpotID:        b.SpotID,
		SpotOwnerID:   b.SpotOwnerID,
		FinderID:      b.FinderID,
		FinderName:    b.FinderName,
		FinderEmail:   b.FinderEmail,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		AmountCents:   b.AmountCents,
		Status:        b.Status,
		Message:       b.Message,
		OwnerResponse: b.OwnerResponse,
		CreatedAt:     b.CreatedAt,
		RespondedAt:   b.RespondedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	return snapshot, nil
}
