package productivity

import (
	"math"
	"sort"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// employeeAccumulator folds one employee's records before the final summary.
type employeeAccumulator struct {
	employee          directory.Employee
	scoreSum          float64
	scoredDays        int
	productiveSeconds int64
	totalSeconds      int64
	dates             map[time.Time]struct{}
}

// SummarizeEmployees folds records into per-employee summaries. Records whose
// email does not match a known employee are excluded and counted, never an
// error. A day with zero total seconds contributes hours and a tracked day
// but no score; the average is over scoreable days only.
func SummarizeEmployees(records []productivity.Record, idx *directory.Index) ([]productivity.EmployeeSummary, productivity.DropStats) {
	var drops productivity.DropStats
	accs := make(map[string]*employeeAccumulator)

	for _, rec := range records {
		email := validator.NormalizeEmail(rec.Email)
		if email == "" || rec.Date.IsZero() {
			drops.Malformed++
			continue
		}
		emp, ok := idx.ByEmail(email)
		if !ok {
			drops.UnknownEmail++
			continue
		}

		acc, ok := accs[email]
		if !ok {
			acc = &employeeAccumulator{
				employee: emp,
				dates:    make(map[time.Time]struct{}),
			}
			accs[email] = acc
		}

		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		acc.dates[day] = struct{}{}
		acc.productiveSeconds += rec.ProductiveSeconds
		acc.totalSeconds += rec.TotalSeconds
		if score, ok := rec.Score(); ok {
			acc.scoreSum += score
			acc.scoredDays++
		}
	}

	emails := make([]string, 0, len(accs))
	for email := range accs {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	summaries := make([]productivity.EmployeeSummary, 0, len(accs))
	for _, email := range emails {
		acc := accs[email]
		summary := productivity.EmployeeSummary{
			Email:                email,
			DisplayName:          acc.employee.DisplayName,
			Department:           acc.employee.Department,
			TotalProductiveHours: roundHours(acc.productiveSeconds),
			DaysTracked:          len(acc.dates),
		}
		if acc.scoredDays > 0 {
			avg := acc.scoreSum / float64(acc.scoredDays)
			summary.AvgProductivityScore = &avg
		}
		summaries = append(summaries, summary)
	}
	return summaries, drops
}

// SummarizeDepartments aggregates seconds across each department's employees
// before dividing, per the department score rule.
func SummarizeDepartments(records []productivity.Record, idx *directory.Index) ([]productivity.DepartmentSummary, productivity.DropStats) {
	type deptAccumulator struct {
		employees         map[string]struct{}
		productiveSeconds int64
		totalSeconds      int64
		employeeDays      int
	}

	var drops productivity.DropStats
	accs := make(map[string]*deptAccumulator)
	seenDays := make(map[string]map[time.Time]struct{})

	for _, rec := range records {
		email := validator.NormalizeEmail(rec.Email)
		if email == "" || rec.Date.IsZero() {
			drops.Malformed++
			continue
		}
		emp, ok := idx.ByEmail(email)
		if !ok {
			drops.UnknownEmail++
			continue
		}

		acc, ok := accs[emp.Department]
		if !ok {
			acc = &deptAccumulator{employees: make(map[string]struct{})}
			accs[emp.Department] = acc
		}
		acc.employees[email] = struct{}{}
		acc.productiveSeconds += rec.ProductiveSeconds
		acc.totalSeconds += rec.TotalSeconds

		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		if seenDays[email] == nil {
			seenDays[email] = make(map[time.Time]struct{})
		}
		if _, seen := seenDays[email][day]; !seen {
			seenDays[email][day] = struct{}{}
			acc.employeeDays++
		}
	}

	departments := make([]string, 0, len(accs))
	for dept := range accs {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	summaries := make([]productivity.DepartmentSummary, 0, len(accs))
	for _, dept := range departments {
		acc := accs[dept]
		summary := productivity.DepartmentSummary{
			Department:           dept,
			EmployeeCount:        len(acc.employees),
			TotalProductiveHours: roundHours(acc.productiveSeconds),
			DaysTracked:          acc.employeeDays,
		}
		if acc.totalSeconds > 0 {
			avg := float64(acc.productiveSeconds) / float64(acc.totalSeconds) * 100
			summary.AvgProductivityScore = &avg
		}
		summaries = append(summaries, summary)
	}
	return summaries, drops
}

// SummarizeOrganization aggregates the whole visible scope into one summary.
func SummarizeOrganization(records []productivity.Record, idx *directory.Index) (productivity.OrgSummary, productivity.DropStats) {
	var drops productivity.DropStats
	var productiveSeconds, totalSeconds int64
	employees := make(map[string]struct{})
	employeeDays := make(map[string]map[time.Time]struct{})
	days := 0

	for _, rec := range records {
		email := validator.NormalizeEmail(rec.Email)
		if email == "" || rec.Date.IsZero() {
			drops.Malformed++
			continue
		}
		if _, ok := idx.ByEmail(email); !ok {
			drops.UnknownEmail++
			continue
		}

		employees[email] = struct{}{}
		productiveSeconds += rec.ProductiveSeconds
		totalSeconds += rec.TotalSeconds

		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		if employeeDays[email] == nil {
			employeeDays[email] = make(map[time.Time]struct{})
		}
		if _, seen := employeeDays[email][day]; !seen {
			employeeDays[email][day] = struct{}{}
			days++
		}
	}

	summary := productivity.OrgSummary{
		EmployeeCount:        len(employees),
		TotalProductiveHours: roundHours(productiveSeconds),
		DaysTracked:          days,
	}
	if totalSeconds > 0 {
		avg := float64(productiveSeconds) / float64(totalSeconds) * 100
		summary.AvgProductivityScore = &avg
	}
	return summary, drops
}

func roundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// compareNullableScores orders nil scores after every numeric value no matter
// the direction. That is a data-completeness convention: an employee without
// a score must never float to the top of either sort order.
func compareNullableScores(a, b *float64, descending bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if descending {
		return *a > *b
	}
	return *a < *b
}
