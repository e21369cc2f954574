package directory

import "context"

// Source is the upstream HRIS directory API.
type Source interface {
	// FetchEmployeeDirectory returns the full directory snapshot, unfiltered.
	FetchEmployeeDirectory(ctx context.Context) ([]Employee, error)

	// FetchReportingStructure returns all transitive reports of a manager.
	// Implementations must de-cycle; callers do not re-traverse the result.
	FetchReportingStructure(ctx context.Context, managerID string) ([]Employee, error)
}

// CacheRepository persists directory snapshots in the relational store so
// reports can survive a directory outage with stale data.
type CacheRepository interface {
	// ReplaceAll atomically swaps the cached snapshot for a new one.
	ReplaceAll(ctx context.Context, employees []Employee) error

	// ListAll returns the cached snapshot.
	ListAll(ctx context.Context) ([]Employee, error)
}
