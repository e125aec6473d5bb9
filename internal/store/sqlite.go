package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/BTreeMap/CoverageGuide/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultSQLiteDSN is a private in-memory database.
const DefaultSQLiteDSN = ":memory:"

//go:embed schema_sqlite.sql
var sqliteSchema string

// SQLiteStore keeps sessions as JSON documents in an in-memory SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and creates the schema. The pool is pinned to one
// connection that is never recycled, because an in-memory database lives only as long as its
// connection.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		cfg.DSN = DefaultSQLiteDSN
	}
	slog.Debug("NewSQLiteStore invoked", "dsn", cfg.DSN)

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		slog.Error("Failed to create SQLite schema", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	slog.Debug("SQLite session store ready")
	return &SQLiteStore{db: db}, nil
}

// GetSession loads and decodes a record.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (models.SessionRecord, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM sessions WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionRecord{}, ErrNotFound
	}
	if err != nil {
		slog.Error("SQLiteStore GetSession failed", "error", err, "sessionID", id)
		return models.SessionRecord{}, err
	}
	var rec models.SessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Error("SQLiteStore GetSession JSON unmarshal failed", "error", err, "sessionID", id)
		return models.SessionRecord{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return rec, nil
}

// SaveSession inserts or replaces a record.
func (s *SQLiteStore) SaveSession(ctx context.Context, rec models.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		slog.Error("SQLiteStore SaveSession JSON marshal failed", "error", err, "sessionID", rec.ID)
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, variant, record, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Variant), string(raw), rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	if err != nil {
		slog.Error("SQLiteStore SaveSession failed", "error", err, "sessionID", rec.ID)
		return err
	}
	return nil
}

// DeleteSession removes a record.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		slog.Error("SQLiteStore DeleteSession failed", "error", err, "sessionID", id)
		return err
	}
	return nil
}

// DeleteSessionsBefore removes records last updated before cutoff.
func (s *SQLiteStore) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff.UnixNano())
	if err != nil {
		slog.Error("SQLiteStore DeleteSessionsBefore failed", "error", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the SQLite database connection and discards its contents.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
