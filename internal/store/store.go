// Package store provides storage backends for CoverageGuide session workspaces.
//
// Both backends live in process memory: InMemoryStore is a plain map and SQLiteStore keeps an
// in-memory SQLite database. Nothing survives a restart.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

// Store holds session records keyed by ID.
type Store interface {
	GetSession(ctx context.Context, id string) (models.SessionRecord, error)
	SaveSession(ctx context.Context, rec models.SessionRecord) error
	DeleteSession(ctx context.Context, id string) error
	// DeleteSessionsBefore removes sessions last updated before cutoff and reports how many went.
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}

// Opts holds configuration options for store implementations.
type Opts struct {
	DSN string
}

// Option configures a store implementation.
type Option func(*Opts)

// WithDSN sets the SQLite data source name.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// cloneRecord copies the slices of rec so callers never share backing arrays with the store.
func cloneRecord(rec models.SessionRecord) models.SessionRecord {
	rec.Conversation.Transcript = append([]models.ChatTurn(nil), rec.Conversation.Transcript...)
	rec.Scenario.SelectedOptions = append([]string(nil), rec.Scenario.SelectedOptions...)
	return rec
}
