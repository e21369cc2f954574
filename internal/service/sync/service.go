package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"github.com/worklens/worklens-backend-go/internal/pkg/cron"
	"golang.org/x/sync/errgroup"
)

// ProductivityWindowDays is how far back each run re-pulls warehouse rows.
// Wide enough that late-arriving corrections land in the cache.
const ProductivityWindowDays = 35

// SyncService refreshes the relational caches from the upstream sources so
// reports can fall back to stale data during an outage.
type SyncService struct {
	directorySource    directory.Source
	directoryCache     directory.CacheRepository
	productivitySource productivity.Source
	productivityCache  productivity.CacheRepository
	now                func() time.Time
}

func NewSyncService(
	directorySource directory.Source,
	directoryCache directory.CacheRepository,
	productivitySource productivity.Source,
	productivityCache productivity.CacheRepository,
) *SyncService {
	return &SyncService{
		directorySource:    directorySource,
		directoryCache:     directoryCache,
		productivitySource: productivitySource,
		productivityCache:  productivityCache,
		now:                time.Now,
	}
}

func (s *SyncService) RegisterJobs(scheduler *cron.Scheduler, interval time.Duration) {
	scheduler.AddJob("refresh_caches", interval, s.RefreshAll)
}

// RefreshAll refreshes both caches in parallel. Each run is tagged so the two
// halves can be correlated in the logs.
func (s *SyncService) RefreshAll(ctx context.Context) error {
	runID := uuid.NewString()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.refreshDirectory(gCtx, runID) })
	g.Go(func() error { return s.refreshProductivity(gCtx, runID) })
	return g.Wait()
}

func (s *SyncService) refreshDirectory(ctx context.Context, runID string) error {
	employees, err := s.directorySource.FetchEmployeeDirectory(ctx)
	if err != nil {
		return fmt.Errorf("fetch employee directory: %w", err)
	}
	if len(employees) == 0 {
		// An empty upstream snapshot is more likely an upstream fault than a
		// company with no employees; keep the previous cache.
		slog.Warn("directory sync returned no employees, keeping cache", "run_id", runID)
		return nil
	}

	if err := s.directoryCache.ReplaceAll(ctx, employees); err != nil {
		return fmt.Errorf("replace directory cache: %w", err)
	}

	unresolvable := 0
	for _, emp := range employees {
		if !emp.HasResolvableEmail() {
			unresolvable++
		}
	}

	slog.Info("directory cache refreshed",
		"run_id", runID,
		"employees", len(employees),
		"unresolvable_email", unresolvable)
	return nil
}

func (s *SyncService) refreshProductivity(ctx context.Context, runID string) error {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -ProductivityWindowDays)

	records, err := s.productivitySource.FetchProductivityData(ctx, start, end, nil)
	if err != nil {
		return fmt.Errorf("fetch productivity data: %w", err)
	}

	if err := s.productivityCache.UpsertAll(ctx, records); err != nil {
		return fmt.Errorf("upsert productivity cache: %w", err)
	}

	slog.Info("productivity cache refreshed",
		"run_id", runID,
		"rows", len(records),
		"window_days", ProductivityWindowDays)
	return nil
}
