package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worklens/worklens-backend-go/internal/domain/directory"
)

type DirectoryServiceImpl struct {
	source directory.Source
	cache  directory.CacheRepository
}

func NewDirectoryService(source directory.Source, cache directory.CacheRepository) directory.Service {
	return &DirectoryServiceImpl{
		source: source,
		cache:  cache,
	}
}

// Snapshot fetches the directory and indexes it. When the HRIS API is down the
// cached snapshot is served instead; the report stays internally consistent,
// just stale. Only when both source and cache fail does the request fail.
func (s *DirectoryServiceImpl) Snapshot(ctx context.Context) (*directory.Index, error) {
	employees, err := s.source.FetchEmployeeDirectory(ctx)
	if err != nil {
		slog.Warn("directory source unreachable, trying cache", "error", err)
		employees, err = s.snapshotFromCache(ctx, err)
		if err != nil {
			return nil, err
		}
	}

	if len(employees) == 0 {
		return nil, directory.ErrEmptySnapshot
	}

	return directory.BuildIndex(employees), nil
}

func (s *DirectoryServiceImpl) snapshotFromCache(ctx context.Context, sourceErr error) ([]directory.Employee, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrSourceUnavailable, sourceErr)
	}

	employees, cacheErr := s.cache.ListAll(ctx)
	if cacheErr != nil {
		return nil, fmt.Errorf("%w: source: %v, cache: %v", directory.ErrSourceUnavailable, sourceErr, cacheErr)
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: cache is empty: %v", directory.ErrSourceUnavailable, sourceErr)
	}

	slog.Info("serving stale directory snapshot from cache", "employees", len(employees))
	return employees, nil
}
