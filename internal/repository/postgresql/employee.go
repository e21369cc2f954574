package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. Narrowed to an
// interface so tests can substitute a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type employeeCacheRepository struct {
	db PgxPool
}

func NewEmployeeCacheRepository(db PgxPool) directory.CacheRepository {
	return &employeeCacheRepository{db: db}
}

// ReplaceAll implements directory.CacheRepository. The snapshot swap runs in
// a transaction so readers never observe a half-replaced directory.
func (r *employeeCacheRepository) ReplaceAll(ctx context.Context, employees []directory.Employee) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM employee_cache`); err != nil {
			return fmt.Errorf("clear employee cache: %w", err)
		}

		query := `
			INSERT INTO employee_cache (
				id, email, display_name, department, job_title, location,
				supervisor_id, is_active, synced_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`
		for _, emp := range employees {
			if _, err := tx.Exec(ctx, query,
				emp.ID,
				emp.Email,
				emp.DisplayName,
				emp.Department,
				emp.JobTitle,
				emp.Location,
				emp.SupervisorID,
				emp.IsActive,
			); err != nil {
				return fmt.Errorf("insert employee cache row: %w", err)
			}
		}
		return nil
	})
}

// ListAll implements directory.CacheRepository.
func (r *employeeCacheRepository) ListAll(ctx context.Context) ([]directory.Employee, error) {
	query := `
		SELECT id, email, display_name, department, job_title, location,
			   supervisor_id, is_active
		FROM employee_cache
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employee cache: %w", err)
	}
	defer rows.Close()

	var employees []directory.Employee
	for rows.Next() {
		var emp directory.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Email, &emp.DisplayName, &emp.Department,
			&emp.JobTitle, &emp.Location, &emp.SupervisorID, &emp.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan employee cache row: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee cache rows: %w", err)
	}

	return employees, nil
}
