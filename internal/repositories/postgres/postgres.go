// Package postgres stores games, participants and products in PostgreSQL.
// It implements the same repository interfaces as the Redis store.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxTxAttempts = 8
	txRetryDelay  = 25 * time.Millisecond

	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"

	activeGameIndex            = "games_single_active"
	submissionNumberConstraint = "submissions_participant_number"
	phoneConstraint            = "public_participants_phone"
	referralCodeIndex          = "public_participants_referral_code"
)

//go:embed schema.sql
var schema string

// Config holds configuration for the PostgreSQL repositories
type Config struct {
	// Pool is a connected pgx pool
	Pool *pgxpool.Pool
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if c.Pool == nil {
		return errors.New("postgres pool cannot be nil")
	}
	return nil
}

// Connect opens a pool for dsn and checks the connection
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return pool, nil
}

// Migrate creates the tables and indexes if they do not exist
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// runSerializable runs fn in a SERIALIZABLE transaction and retries it when
// postgres aborts the transaction because of a concurrent writer. Errors
// returned by fn are passed through unwrapped; contention is returned once
// the attempts run out.
func runSerializable(ctx context.Context, pool *pgxpool.Pool, contention error, fn func(tx pgx.Tx) error) error {
	delay := txRetryDelay
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := runTx(ctx, pool, fn)
		if err == nil || !isRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return contention
}

func runTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	case codeUniqueViolation:
		// two first guesses of the same participant raced for the same number
		return pgErr.ConstraintName == submissionNumberConstraint
	}
	return false
}

// isUniqueViolation reports whether err violates the named constraint or index
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
}
