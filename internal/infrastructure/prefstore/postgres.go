package prefstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
)

const backendPostgres = "postgres"

// DBTX abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements PreferenceStore on PostgreSQL. This is the
// server-synced backend: a profile keeps its preferences across devices
// as long as it presents the same profile cookie.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a PostgreSQL-backed preference store.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetSet returns the persisted id list. A missing row or unparsable value
// reads as an empty list.
func (s *PostgresStore) GetSet(ctx context.Context, profileID, name string) ([]string, error) {
	const query = `
		SELECT value FROM viewer_preferences
		WHERE profile_id = $1 AND name = $2
	`

	var value string
	err := s.db.QueryRow(ctx, query, profileID, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendPostgres, metrics.PrefStatusSuccess).Inc()
			return []string{}, nil
		}
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendPostgres, metrics.PrefStatusError).Inc()
		return nil, fmt.Errorf("query set %s: %w", name, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendPostgres, metrics.PrefStatusSuccess).Inc()
		return []string{}, nil
	}

	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendPostgres, metrics.PrefStatusSuccess).Inc()
	return ids, nil
}

// SetSet overwrites the persisted set.
func (s *PostgresStore) SetSet(ctx context.Context, profileID, name string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendPostgres, metrics.PrefStatusError).Inc()
		return fmt.Errorf("encode set %s: %w", name, err)
	}

	if err := s.upsert(ctx, profileID, name, string(data)); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendPostgres, metrics.PrefStatusError).Inc()
		return err
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendPostgres, metrics.PrefStatusSuccess).Inc()
	return nil
}

// GetScalar returns the persisted value and whether it was present.
func (s *PostgresStore) GetScalar(ctx context.Context, profileID, name string) (string, bool, error) {
	const query = `
		SELECT value FROM viewer_preferences
		WHERE profile_id = $1 AND name = $2
	`

	var value string
	err := s.db.QueryRow(ctx, query, profileID, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendPostgres, metrics.PrefStatusSuccess).Inc()
			return "", false, nil
		}
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendPostgres, metrics.PrefStatusError).Inc()
		return "", false, fmt.Errorf("query scalar %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendPostgres, metrics.PrefStatusSuccess).Inc()
	return value, true, nil
}

// SetScalar overwrites the persisted value.
func (s *PostgresStore) SetScalar(ctx context.Context, profileID, name, value string) error {
	if err := s.upsert(ctx, profileID, name, value); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendPostgres, metrics.PrefStatusError).Inc()
		return err
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendPostgres, metrics.PrefStatusSuccess).Inc()
	return nil
}

// DeleteScalar removes the persisted value. Deleting an absent scalar is
// a no-op.
func (s *PostgresStore) DeleteScalar(ctx context.Context, profileID, name string) error {
	const query = `
		DELETE FROM viewer_preferences
		WHERE profile_id = $1 AND name = $2
	`

	if _, err := s.db.Exec(ctx, query, profileID, name); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendPostgres, metrics.PrefStatusError).Inc()
		return fmt.Errorf("delete scalar %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendPostgres, metrics.PrefStatusSuccess).Inc()
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, profileID, name, value string) error {
	const query = `
		INSERT INTO viewer_preferences (profile_id, name, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, name)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.Exec(ctx, query, profileID, name, value, time.Now()); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

// Compile-time verification that PostgresStore implements PreferenceStore.
var _ repository.PreferenceStore = (*PostgresStore)(nil)
