package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite, redis)
// implement this and expose sub-repositories per concern.
type Store interface {
	Settings() Settings
	Submissions() Submissions

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is still reachable.
	Ping(ctx context.Context) error
}

// Settings is an opaque key-value table. The trigger API configuration lives
// here under a single key.
type Settings interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put inserts or replaces key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

type Submissions interface {
	// Record appends a submission to the audit trail.
	Record(ctx context.Context, s domain.Submission) error

	// ListRecent returns up to limit submissions, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)

	// PruneBefore deletes submissions created before cutoff and returns how
	// many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
