package productivity

import (
	"context"
	"time"
)

// Source is the productivity side of the time-tracking warehouse API.
type Source interface {
	// FetchProductivityData returns per-day telemetry within [start, end].
	// A non-empty emails filter bounds the volume retrieved.
	FetchProductivityData(ctx context.Context, start, end time.Time, emails []string) ([]Record, error)
}

// CacheRepository persists warehouse rows in the relational store. The sync
// job writes through it; reports read the warehouse directly and fall back
// to the cache when the warehouse is unreachable.
type CacheRepository interface {
	// UpsertAll inserts or updates rows keyed by (email, date).
	UpsertAll(ctx context.Context, records []Record) error

	// ListRange returns cached rows within [start, end], optionally filtered
	// to the given emails.
	ListRange(ctx context.Context, start, end time.Time, emails []string) ([]Record, error)
}
