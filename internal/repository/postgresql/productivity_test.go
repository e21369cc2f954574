package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

func TestProductivityCacheRepository_UpsertAll(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductivityCacheRepository(mock)
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO productivity_cache").
		WithArgs("a@corp.com", date, int64(3600), int64(1800), int64(600), int64(6000)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.UpsertAll(context.Background(), []productivity.Record{
		{
			Email:               "a@corp.com",
			Date:                date,
			ProductiveSeconds:   3600,
			UnproductiveSeconds: 1800,
			NeutralSeconds:      600,
			TotalSeconds:        6000,
		},
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductivityCacheRepository_UpsertAll_StopsOnFirstFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductivityCacheRepository(mock)
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO productivity_cache").
		WithArgs("a@corp.com", date, int64(0), int64(0), int64(0), int64(0)).
		WillReturnError(errors.New("constraint violation"))

	err = repo.UpsertAll(context.Background(), []productivity.Record{
		{Email: "a@corp.com", Date: date},
		{Email: "b@corp.com", Date: date},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert productivity cache row")
}

func TestProductivityCacheRepository_ListRange(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductivityCacheRepository(mock)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"email", "date", "productive_seconds", "unproductive_seconds",
		"neutral_seconds", "total_seconds",
	}).
		AddRow("a@corp.com", start, int64(3600), int64(0), int64(0), int64(3600)).
		AddRow("b@corp.com", start, int64(1800), int64(900), int64(0), int64(2700))

	mock.ExpectQuery("SELECT (.+) FROM productivity_cache").
		WithArgs(start, end, "a@corp.com", "b@corp.com").
		WillReturnRows(rows)

	records, err := repo.ListRange(context.Background(), start, end, []string{"a@corp.com", "b@corp.com"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a@corp.com", records[0].Email)
	assert.Equal(t, int64(3600), records[0].ProductiveSeconds)
	assert.Equal(t, int64(2700), records[1].TotalSeconds)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductivityCacheRepository_ListRange_NoEmailFilter(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProductivityCacheRepository(mock)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"email", "date", "productive_seconds", "unproductive_seconds",
		"neutral_seconds", "total_seconds",
	})

	mock.ExpectQuery("SELECT (.+) FROM productivity_cache").
		WithArgs(start, end).
		WillReturnRows(rows)

	records, err := repo.ListRange(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.NoError(t, mock.ExpectationsWereMet())
}
