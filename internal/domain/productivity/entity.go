package productivity

import (
	"time"
)

// Record is one employee-day of telemetry from the time-tracking warehouse.
type Record struct {
	Email               string
	Date                time.Time
	ProductiveSeconds   int64
	UnproductiveSeconds int64
	NeutralSeconds      int64
	TotalSeconds        int64
}

// Score returns the day's productivity score (0-100) and whether the day is
// scoreable. A zero-total day carries no score; it must be excluded from
// averages rather than counted as zero.
func (r Record) Score() (float64, bool) {
	if r.TotalSeconds <= 0 {
		return 0, false
	}
	return float64(r.ProductiveSeconds) / float64(r.TotalSeconds) * 100, true
}

// EmployeeSummary is the per-employee fold of a date range of records.
// AvgProductivityScore is nil when no day in range was scoreable.
type EmployeeSummary struct {
	Email                string   `json:"email"`
	DisplayName          string   `json:"display_name"`
	Department           string   `json:"department"`
	AvgProductivityScore *float64 `json:"avg_productivity_score"`
	TotalProductiveHours float64  `json:"total_productive_hours"`
	DaysTracked          int      `json:"days_tracked"`
}

// DepartmentSummary aggregates seconds across all employees in a department
// before dividing.
type DepartmentSummary struct {
	Department           string   `json:"department"`
	EmployeeCount        int      `json:"employee_count"`
	AvgProductivityScore *float64 `json:"avg_productivity_score"`
	TotalProductiveHours float64  `json:"total_productive_hours"`
	DaysTracked          int      `json:"days_tracked"`
}

// OrgSummary aggregates the whole visible scope.
type OrgSummary struct {
	EmployeeCount        int      `json:"employee_count"`
	AvgProductivityScore *float64 `json:"avg_productivity_score"`
	TotalProductiveHours float64  `json:"total_productive_hours"`
	DaysTracked          int      `json:"days_tracked"`
}

// DropStats counts records excluded from aggregation. Drops are never errors,
// but the surrounding sync and report code needs them observable.
type DropStats struct {
	UnknownEmail int `json:"unknown_email"`
	Malformed    int `json:"malformed"`
}

// Total returns the total number of dropped records.
func (d DropStats) Total() int {
	return d.UnknownEmail + d.Malformed
}
