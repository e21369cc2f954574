package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	resolver         access.Resolver
	directoryService directory.Service
	source           attendance.Source
	calc             *Calculator
	now              func() time.Time
}

func NewAttendanceService(
	resolver access.Resolver,
	directoryService directory.Service,
	source attendance.Source,
	calc *Calculator,
) attendance.Service {
	return &AttendanceServiceImpl{
		resolver:         resolver,
		directoryService: directoryService,
		source:           source,
		calc:             calc,
		now:              time.Now,
	}
}

// GetComplianceReport builds the weekly compliance report for the requester's
// visibility scope. Access resolution completes before the warehouse fetch so
// the email filter bounds the data volume retrieved.
func (s *AttendanceServiceImpl) GetComplianceReport(ctx context.Context, req attendance.ComplianceReportRequest) (attendance.ComplianceReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.ComplianceReport{}, err
	}

	idx, err := s.directoryService.Snapshot(ctx)
	if err != nil {
		return attendance.ComplianceReport{}, err
	}
	resolved := s.resolver.ResolveSnapshot(idx, req.RequesterEmail)

	today := s.now().UTC()
	rangeEnd := today
	rangeStart := WeekStart(today).AddDate(0, 0, -7*(req.WeeksBack-1))
	weekStarts := weekStartsIn(rangeStart, rangeEnd)

	allowed := resolved.AllowedEmails()
	records, err := s.source.FetchOfficeAttendanceData(ctx, rangeStart, rangeEnd, allowed)
	if err != nil {
		return attendance.ComplianceReport{}, fmt.Errorf("%w: %v", attendance.ErrSourceUnavailable, err)
	}

	byEmail := groupByEmail(records)
	currentWeek := WeekStart(today)

	employees := make([]attendance.EmployeeComplianceRecord, 0, len(allowed))
	for _, email := range allowed {
		emp, inDirectory := idx.ByEmail(email)
		if !inDirectory {
			// Only the requester's own records are addressable without a
			// directory entry (contractor case); HR admins are scoped to the
			// directory itself.
			if email != resolved.RequesterEmail || resolved.IsHRAdmin {
				continue
			}
		}
		if inDirectory && !emp.IsActive {
			continue
		}

		weeks := s.calc.ComputeEmployeeWeeks(email, byEmail[email], weekStarts)

		record := attendance.EmployeeComplianceRecord{
			Email:          email,
			DisplayName:    emp.DisplayName,
			Department:     emp.Department,
			ComplianceRate: ComplianceRate(weeks),
			Weeks:          toWeekResponses(weeks),
		}
		for _, week := range weeks {
			if week.WeekStart.Equal(currentWeek) {
				record.CurrentWeekStatus = s.calc.ClassifyCurrentWeek(week, today)
				break
			}
		}
		employees = append(employees, record)
	}

	// Most concerning first, then lowest historical compliance, then email
	// to keep repeated runs identical.
	sort.SliceStable(employees, func(i, j int) bool {
		ci, cj := employees[i].CurrentWeekStatus.Concern(), employees[j].CurrentWeekStatus.Concern()
		if ci != cj {
			return ci < cj
		}
		if employees[i].ComplianceRate != employees[j].ComplianceRate {
			return employees[i].ComplianceRate < employees[j].ComplianceRate
		}
		return employees[i].Email < employees[j].Email
	})

	return attendance.ComplianceReport{
		RangeStart:  rangeStart.Format("2006-01-02"),
		RangeEnd:    rangeEnd.Format("2006-01-02"),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Employees:   employees,
		Summary:     summarize(employees),
	}, nil
}

func groupByEmail(records []attendance.Record) map[string][]attendance.Record {
	byEmail := make(map[string][]attendance.Record)
	for _, rec := range records {
		email := validator.NormalizeEmail(rec.Email)
		byEmail[email] = append(byEmail[email], rec)
	}
	return byEmail
}

func toWeekResponses(weeks []attendance.WeeklyCompliance) []attendance.WeekResponse {
	out := make([]attendance.WeekResponse, 0, len(weeks))
	for _, week := range weeks {
		out = append(out, attendance.WeekResponse{
			WeekStart:         week.WeekStart.Format("2006-01-02"),
			OfficeDays:        week.OfficeDays,
			RemoteDays:        week.RemoteDays,
			TotalDaysWithData: week.TotalDaysWithData,
			IsCompliant:       week.IsCompliant,
		})
	}
	return out
}

func summarize(employees []attendance.EmployeeComplianceRecord) attendance.ComplianceSummary {
	summary := attendance.ComplianceSummary{TotalEmployees: len(employees)}

	rateSum := 0
	for _, emp := range employees {
		rateSum += emp.ComplianceRate
		switch emp.CurrentWeekStatus {
		case attendance.StatusCompliant:
			summary.Compliant++
		case attendance.StatusAtRisk:
			summary.AtRisk++
		case attendance.StatusNonCompliant:
			summary.NonCompliant++
		case attendance.StatusNoData:
			summary.NoData++
		}
	}
	if len(employees) > 0 {
		summary.AvgComplianceRate = int(float64(rateSum)/float64(len(employees)) + 0.5)
	}
	return summary
}
