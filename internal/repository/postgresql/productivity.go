package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

type productivityCacheRepository struct {
	db PgxPool
}

func NewProductivityCacheRepository(db PgxPool) productivity.CacheRepository {
	return &productivityCacheRepository{db: db}
}

// UpsertAll implements productivity.CacheRepository. Rows are keyed by
// (email, date); re-synced days overwrite the previous pull.
func (r *productivityCacheRepository) UpsertAll(ctx context.Context, records []productivity.Record) error {
	query := `
		INSERT INTO productivity_cache (
			email, date, productive_seconds, unproductive_seconds,
			neutral_seconds, total_seconds, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (email, date) DO UPDATE SET
			productive_seconds = EXCLUDED.productive_seconds,
			unproductive_seconds = EXCLUDED.unproductive_seconds,
			neutral_seconds = EXCLUDED.neutral_seconds,
			total_seconds = EXCLUDED.total_seconds,
			synced_at = NOW()
	`

	for _, rec := range records {
		if _, err := r.db.Exec(ctx, query,
			rec.Email,
			rec.Date,
			rec.ProductiveSeconds,
			rec.UnproductiveSeconds,
			rec.NeutralSeconds,
			rec.TotalSeconds,
		); err != nil {
			return fmt.Errorf("upsert productivity cache row: %w", err)
		}
	}
	return nil
}

// ListRange implements productivity.CacheRepository.
func (r *productivityCacheRepository) ListRange(ctx context.Context, start, end time.Time, emails []string) ([]productivity.Record, error) {
	query := `
		SELECT email, date, productive_seconds, unproductive_seconds,
			   neutral_seconds, total_seconds
		FROM productivity_cache
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{start, end}

	if len(emails) > 0 {
		placeholders := make([]string, 0, len(emails))
		for i, email := range emails {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
			args = append(args, email)
		}
		query += fmt.Sprintf(" AND email IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY email, date"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productivity cache: %w", err)
	}
	defer rows.Close()

	var records []productivity.Record
	for rows.Next() {
		var rec productivity.Record
		if err := rows.Scan(
			&rec.Email, &rec.Date, &rec.ProductiveSeconds,
			&rec.UnproductiveSeconds, &rec.NeutralSeconds, &rec.TotalSeconds,
		); err != nil {
			return nil, fmt.Errorf("scan productivity cache row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate productivity cache rows: %w", err)
	}

	return records, nil
}
