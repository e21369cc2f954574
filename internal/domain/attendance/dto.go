package attendance

import (
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// ========================================
// COMPLIANCE REPORT DTOs
// ========================================

const (
	DefaultWeeksBack = 8
	MaxWeeksBack     = 52
)

type ComplianceReportRequest struct {
	RequesterEmail string `json:"-"`
	WeeksBack      int    `json:"weeks_back"`
}

func (r *ComplianceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequesterEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "requester_email",
			Message: "requester email is required",
		})
	}

	if r.WeeksBack == 0 {
		r.WeeksBack = DefaultWeeksBack
	}
	if r.WeeksBack < 1 || r.WeeksBack > MaxWeeksBack {
		errs = append(errs, validator.ValidationError{
			Field:   "weeks_back",
			Message: "weeks_back must be between 1 and 52",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeekResponse struct {
	WeekStart         string `json:"week_start"`
	OfficeDays        int    `json:"office_days"`
	RemoteDays        int    `json:"remote_days"`
	TotalDaysWithData int    `json:"total_days_with_data"`
	IsCompliant       bool   `json:"is_compliant"`
}

type EmployeeComplianceRecord struct {
	Email             string         `json:"email"`
	DisplayName       string         `json:"display_name"`
	Department        string         `json:"department"`
	CurrentWeekStatus WeekStatus     `json:"current_week_status"`
	ComplianceRate    int            `json:"compliance_rate"`
	Weeks             []WeekResponse `json:"weeks"`
}

type ComplianceSummary struct {
	TotalEmployees    int `json:"total_employees"`
	Compliant         int `json:"compliant"`
	AtRisk            int `json:"at_risk"`
	NonCompliant      int `json:"non_compliant"`
	NoData            int `json:"no_data"`
	AvgComplianceRate int `json:"avg_compliance_rate"`
}

type ComplianceReport struct {
	RangeStart  string                     `json:"range_start"`
	RangeEnd    string                     `json:"range_end"`
	GeneratedAt string                     `json:"generated_at"`
	Employees   []EmployeeComplianceRecord `json:"employees"`
	Summary     ComplianceSummary          `json:"summary"`
}
