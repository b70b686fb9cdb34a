package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS bank_snapshots (
	id INT PRIMARY KEY,
	version INT NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL,
	state JSONB NOT NULL
)`

// snapshotRowID is the single row the whole-state snapshot lives in.
const snapshotRowID = 1

// PostgresStore keeps the snapshot as one JSONB row, upserted on every save.
// The whole-snapshot strategy carries over unchanged from the file backend;
// Postgres only buys durability on a shared host, not incremental writes.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgres builds a Postgres-backed store and ensures its table exists.
func NewPostgres(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, snapshotSchema); err != nil {
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save replaces the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, snap Snapshot) error {
	snap.Version = SnapshotVersion
	snap.SavedAt = time.Now().UTC()

	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.Exec(ctx, `INSERT INTO bank_snapshots (id, version, saved_at, state)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET version = $2, saved_at = $3, state = $4`,
		snapshotRowID, snap.Version, snap.SavedAt, state)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot row, reporting absent when it does not exist.
func (s *PostgresStore) Load(ctx context.Context) (Snapshot, bool, error) {
	var state []byte
	row := s.db.QueryRow(ctx, `SELECT state FROM bank_snapshots WHERE id = $1`, snapshotRowID)
	if err := row.Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}
