package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var _ session.Storage = (*PostgresStorage)(nil)

var ErrSchemaMissing = errors.New("storage: session_values table is missing, run migrations")

const postgresSchema = `
CREATE TABLE IF NOT EXISTS session_values (
	session_id TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (session_id, key)
);
CREATE INDEX IF NOT EXISTS idx_session_values_updated_at ON session_values (updated_at);
`

const undefinedTable = "42P01"

type sessionValue struct {
	SessionID string    `db:"session_id"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresStorage keeps one row per (session id, key).
type PostgresStorage struct {
	db        *sqlx.DB
	sessionID string
}

func NewPostgresStorage(db *sqlx.DB, sessionID string) *PostgresStorage {
	return &PostgresStorage{db: db, sessionID: sessionID}
}

func MigratePostgres(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("storage: migrate postgres: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value string
	query := `SELECT value FROM session_values WHERE session_id = $1 AND key = $2`

	err := s.db.GetContext(ctx, &value, query, s.sessionID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", session.ErrKeyNotFound
		}
		return "", mapPostgresError("get", err)
	}
	return value, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO session_values (session_id, key, value, updated_at)
		VALUES (:session_id, :key, :value, :updated_at)
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	row := sessionValue{
		SessionID: s.sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return mapPostgresError("set", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `DELETE FROM session_values WHERE session_id = $1 AND key = $2`
	if _, err := s.db.ExecContext(ctx, query, s.sessionID, key); err != nil {
		return mapPostgresError("delete", err)
	}
	return nil
}

func (s *PostgresStorage) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `DELETE FROM session_values WHERE session_id = $1`
	if _, err := s.db.ExecContext(ctx, query, s.sessionID); err != nil {
		return mapPostgresError("clear", err)
	}
	return nil
}

// PurgeIdleSessions deletes every session whose newest value is older than
// the cutoff and returns how many rows went away.
func PurgeIdleSessions(ctx context.Context, db *sqlx.DB, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM session_values
		WHERE session_id IN (
			SELECT session_id FROM session_values
			GROUP BY session_id
			HAVING MAX(updated_at) < $1
		)`

	result, err := db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, mapPostgresError("purge", err)
	}
	return result.RowsAffected()
}

func mapPostgresError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return ErrSchemaMissing
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return ErrSchemaMissing
	}

	return fmt.Errorf("storage: postgres %s failed: %w", op, err)
}

type PostgresProvider struct {
	db *sqlx.DB
}

func NewPostgresProvider(db *sqlx.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) ForSession(sessionID string) session.Storage {
	return NewPostgresStorage(p.db, sessionID)
}

func (p *PostgresProvider) PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	return PurgeIdleSessions(ctx, p.db, cutoff)
}
