package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// nextDocumentNumber computes the next sequential document number for the
// current year, e.g. REF-2026-007. It reads the lexicographically greatest
// existing number sharing the year prefix and increments its numeric suffix,
// zero-padded to three digits. Must run inside the same transaction as the
// insert so the table's unique constraint can arbitrate concurrent writers.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, table, column, prefix string) (string, error) {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, time.Now().Year())

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s LIKE $1
		ORDER BY %s DESC
		LIMIT 1;
	`, column, table, column, column)

	var last string
	err := tx.QueryRow(ctx, query, yearPrefix+"%").Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to read last document number from %s: %w", table, err)
	}

	return nextInSequence(yearPrefix, last), nil
}

// nextInSequence increments the numeric suffix of the greatest existing
// number under yearPrefix. An empty or unparseable suffix restarts the
// sequence at 001.
func nextInSequence(yearPrefix, last string) string {
	seq := 0
	if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, yearPrefix)); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%03d", yearPrefix, seq+1)
}
