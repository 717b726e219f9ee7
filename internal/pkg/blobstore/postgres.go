package blobstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/unidesk/internal/pkg/logger"
)

const appStateTable = "app_state"

// PostgresStore keeps each document in one row of the app_state table (see
// migrations/001_app_state.sql).
type PostgresStore struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresStore wraps an existing pool. The pool is closed by Close.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the payload stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	sql, args, err := s.sb.Select("payload").
		From(appStateTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get blob query: %w", err)
	}

	var payload []byte
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("key", key).Msg("Error reading blob row")
		return nil, fmt.Errorf("error reading blob %s: %w", key, err)
	}
	return payload, nil
}

// Put upserts the payload for key
func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	sql, args, err := s.sb.Insert(appStateTable).
		Columns("key", "payload", "updated_at").
		Values(key, data, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build put blob query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error writing blob row")
		return fmt.Errorf("error writing blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	sql, args, err := s.sb.Delete(appStateTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete blob query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error deleting blob row")
		return fmt.Errorf("error deleting blob %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying pool
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
