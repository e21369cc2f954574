package productivity

import (
	"time"

	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// ========================================
// PRODUCTIVITY SUMMARY DTOs
// ========================================

type GroupBy string

const (
	GroupByEmployee     GroupBy = "employee"
	GroupByDepartment   GroupBy = "department"
	GroupByOrganization GroupBy = "organization"
)

type SortField string

const (
	SortByName  SortField = "name"
	SortByScore SortField = "score"
	SortByHours SortField = "hours"
	SortByDays  SortField = "days"
)

const (
	DefaultLimit = 25
	MaxLimit     = 200
)

type SummaryRequest struct {
	RequesterEmail string    `json:"-"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	GroupBy        GroupBy   `json:"group_by"`
	Search         string    `json:"search"`
	SortBy         SortField `json:"sort_by"`
	Descending     bool      `json:"descending"`
	Page           int       `json:"page"`
	Limit          int       `json:"limit"`

	// set by Validate
	RangeStart time.Time `json:"-"`
	RangeEnd   time.Time `json:"-"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequesterEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_email",
			Message: "requester email is required",
		})
	}

	start, ok := validator.IsValidDate(r.Start)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a valid date (YYYY-MM-DD)",
		})
	}
	end, ok := validator.IsValidDate(r.End)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a valid date (YYYY-MM-DD)",
		})
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must not be before start",
		})
	}
	r.RangeStart = start
	r.RangeEnd = end

	if r.GroupBy == "" {
		r.GroupBy = GroupByEmployee
	}
	switch r.GroupBy {
	case GroupByEmployee, GroupByDepartment, GroupByOrganization:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "group_by",
			Message: "group_by must be one of employee, department, organization",
		})
	}

	if r.SortBy == "" {
		r.SortBy = SortByName
	}
	switch r.SortBy {
	case SortByName, SortByScore, SortByHours, SortByDays:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of name, score, hours, days",
		})
	}

	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit < 1 || r.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 200",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryReport struct {
	RangeStart  string  `json:"range_start"`
	RangeEnd    string  `json:"range_end"`
	GroupBy     GroupBy `json:"group_by"`
	GeneratedAt string  `json:"generated_at"`

	// Exactly one of the following is populated, matching GroupBy.
	Employees    []EmployeeSummary   `json:"employees,omitempty"`
	Departments  []DepartmentSummary `json:"departments,omitempty"`
	Organization *OrgSummary         `json:"organization,omitempty"`

	Dropped    DropStats `json:"dropped"`
	TotalItems int       `json:"total_items"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}
