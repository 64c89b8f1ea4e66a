package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-tracker/pkg/config"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

const stateSchema = `CREATE TABLE IF NOT EXISTS tracker_state (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStateRepository stores each state key as one JSONB row.
type PostgresStateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStateRepository constructs a Postgres-backed state repository.
func NewPostgresStateRepository(db *sqlx.DB) *PostgresStateRepository {
	return &PostgresStateRepository{db: db, now: time.Now}
}

// Driver names the backend for metrics and logs.
func (r *PostgresStateRepository) Driver() string {
	return config.StoreDriverPostgres
}

// EnsureSchema creates the state table when missing.
func (r *PostgresStateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, stateSchema); err != nil {
		return fmt.Errorf("create tracker_state: %w", err)
	}
	return nil
}

// Get loads the JSON value for key into dest.
func (r *PostgresStateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	var raw []byte
	if err := r.db.GetContext(ctx, &raw, `SELECT value FROM tracker_state WHERE key = $1`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrKeyNotFound
		}
		return fmt.Errorf("select state %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}
	return nil
}

// Set upserts the JSON value for key.
func (r *PostgresStateRepository) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	query := `INSERT INTO tracker_state (key, value, updated_at) VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, payload, r.now().UTC()); err != nil {
		return fmt.Errorf("upsert state %s: %w", key, err)
	}
	return nil
}

// Close releases the database pool.
func (r *PostgresStateRepository) Close() error {
	return r.db.Close()
}
