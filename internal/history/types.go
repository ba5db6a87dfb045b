package history

import (
	"context"
	"errors"
	"time"

	"stockwatch/internal/stock"
)

var ErrClosed = errors.New("history store closed")

// Config configures the store.
//
// Driver values:
//   - "file" (or empty): JSON file at Path
//   - "sqlite": SQLite database file at Path
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Store is the single-record persistence API used by the checker.
//
// Load returns (nil, nil) when nothing has been saved yet (missing or empty
// store). A corrupt or unreadable store yields (nil, err); callers treat
// that as "no previous record" and surface err as a warning.
type Store interface {
	Load(ctx context.Context) (*stock.Record, error)
	Save(ctx context.Context, rec stock.Record) error
	Close() error
}
