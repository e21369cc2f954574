package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

type fakeDirectorySource struct {
	employees []directory.Employee
	err       error
}

func (f *fakeDirectorySource) FetchEmployeeDirectory(ctx context.Context) ([]directory.Employee, error) {
	return f.employees, f.err
}

func (f *fakeDirectorySource) FetchReportingStructure(ctx context.Context, managerID string) ([]directory.Employee, error) {
	return nil, errors.New("not used")
}

type fakeDirectoryCache struct {
	replaced   [][]directory.Employee
	replaceErr error
}

func (f *fakeDirectoryCache) ReplaceAll(ctx context.Context, employees []directory.Employee) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, employees)
	return nil
}

func (f *fakeDirectoryCache) ListAll(ctx context.Context) ([]directory.Employee, error) {
	return nil, errors.New("not used")
}

type fakeProductivitySource struct {
	records []productivity.Record
	err     error

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeProductivitySource) FetchProductivityData(ctx context.Context, start, end time.Time, emails []string) ([]productivity.Record, error) {
	f.gotStart, f.gotEnd = start, end
	return f.records, f.err
}

type fakeProductivityCache struct {
	upserted  [][]productivity.Record
	upsertErr error
}

func (f *fakeProductivityCache) UpsertAll(ctx context.Context, records []productivity.Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, records)
	return nil
}

func (f *fakeProductivityCache) ListRange(ctx context.Context, start, end time.Time, emails []string) ([]productivity.Record, error) {
	return nil, errors.New("not used")
}

func TestRefreshAll_RefreshesBothCaches(t *testing.T) {
	t.Parallel()

	dirSource := &fakeDirectorySource{employees: []directory.Employee{
		{ID: "e1", Email: "a@corp.com", IsActive: true},
	}}
	dirCache := &fakeDirectoryCache{}
	prodSource := &fakeProductivitySource{records: []productivity.Record{
		{Email: "a@corp.com", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), TotalSeconds: 3600},
	}}
	prodCache := &fakeProductivityCache{}

	svc := NewSyncService(dirSource, dirCache, prodSource, prodCache)
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.RefreshAll(context.Background()))

	require.Len(t, dirCache.replaced, 1)
	assert.Len(t, dirCache.replaced[0], 1)
	require.Len(t, prodCache.upserted, 1)

	// The productivity pull covers the re-sync window ending now.
	assert.Equal(t, now, prodSource.gotEnd)
	assert.Equal(t, now.AddDate(0, 0, -ProductivityWindowDays), prodSource.gotStart)
}

func TestRefreshAll_EmptyDirectoryKeepsCache(t *testing.T) {
	t.Parallel()

	dirCache := &fakeDirectoryCache{}
	svc := NewSyncService(&fakeDirectorySource{}, dirCache, &fakeProductivitySource{}, &fakeProductivityCache{})

	require.NoError(t, svc.RefreshAll(context.Background()))
	assert.Empty(t, dirCache.replaced)
}

func TestRefreshAll_DirectoryFetchFailure(t *testing.T) {
	t.Parallel()

	dirSource := &fakeDirectorySource{err: errors.New("hris down")}
	prodCache := &fakeProductivityCache{}
	svc := NewSyncService(dirSource, &fakeDirectoryCache{}, &fakeProductivitySource{}, prodCache)

	err := svc.RefreshAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch employee directory")
}

func TestRefreshAll_ProductivityUpsertFailure(t *testing.T) {
	t.Parallel()

	prodCache := &fakeProductivityCache{upsertErr: errors.New("db down")}
	svc := NewSyncService(&fakeDirectorySource{
		employees: []directory.Employee{{ID: "e1", Email: "a@corp.com", IsActive: true}},
	}, &fakeDirectoryCache{}, &fakeProductivitySource{}, prodCache)

	err := svc.RefreshAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert productivity cache")
}
