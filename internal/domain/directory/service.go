package directory

import "context"

// Service provides directory snapshots to the resolver and the aggregators.
type Service interface {
	// Snapshot fetches the current directory and builds an index over it.
	// Falls back to the cached snapshot when the source is unreachable.
	Snapshot(ctx context.Context) (*Index, error)
}
