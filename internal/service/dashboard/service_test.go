package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/dashboard"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

type fakeResolver struct {
	resolved access.Context
	err      error
}

func (f *fakeResolver) Resolve(ctx context.Context, requesterEmail string) (access.Context, error) {
	return f.resolved, f.err
}

func (f *fakeResolver) ResolveSnapshot(idx *directory.Index, requesterEmail string) access.Context {
	return f.resolved
}

type fakeAttendanceService struct {
	report attendance.ComplianceReport
	err    error
	gotReq attendance.ComplianceReportRequest
}

func (f *fakeAttendanceService) GetComplianceReport(ctx context.Context, req attendance.ComplianceReportRequest) (attendance.ComplianceReport, error) {
	f.gotReq = req
	return f.report, f.err
}

type fakeProductivityService struct {
	report productivity.SummaryReport
	err    error
	gotReq productivity.SummaryRequest
}

func (f *fakeProductivityService) GetSummary(ctx context.Context, req productivity.SummaryRequest) (productivity.SummaryReport, error) {
	f.gotReq = req
	return f.report, f.err
}

func TestGetOverview_CombinesBothReports(t *testing.T) {
	t.Parallel()

	score := 72.5
	attendanceFake := &fakeAttendanceService{report: attendance.ComplianceReport{
		RangeStart: "2024-01-01",
		RangeEnd:   "2024-02-25",
		Summary:    attendance.ComplianceSummary{TotalEmployees: 5, Compliant: 3},
	}}
	productivityFake := &fakeProductivityService{report: productivity.SummaryReport{
		Organization: &productivity.OrgSummary{
			EmployeeCount:        5,
			AvgProductivityScore: &score,
		},
	}}
	resolver := &fakeResolver{resolved: access.NewContext("mgr@corp.com", []string{"a@corp.com"})}

	svc := NewDashboardService(resolver, attendanceFake, productivityFake).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC) }

	overview, err := svc.GetOverview(context.Background(), dashboard.OverviewRequest{
		RequesterEmail: "mgr@corp.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "mgr@corp.com", overview.Access.RequesterEmail)
	assert.Equal(t, 5, overview.Compliance.TotalEmployees)
	assert.Equal(t, 5, overview.Productivity.EmployeeCount)
	assert.Equal(t, "2024-01-01", overview.RangeStart)
	assert.Equal(t, "2024-02-25", overview.RangeEnd)

	// Both sub-reports run with the defaulted window and the same requester.
	assert.Equal(t, attendance.DefaultWeeksBack, attendanceFake.gotReq.WeeksBack)
	assert.Equal(t, "mgr@corp.com", attendanceFake.gotReq.RequesterEmail)
	assert.Equal(t, productivity.GroupByOrganization, productivityFake.gotReq.GroupBy)
	assert.Equal(t, "mgr@corp.com", productivityFake.gotReq.RequesterEmail)
}

func TestGetOverview_FailsWhenEitherReportFails(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{resolved: access.NewContext("mgr@corp.com", nil)}

	svc := NewDashboardService(
		resolver,
		&fakeAttendanceService{err: attendance.ErrSourceUnavailable},
		&fakeProductivityService{report: productivity.SummaryReport{Organization: &productivity.OrgSummary{}}},
	)

	_, err := svc.GetOverview(context.Background(), dashboard.OverviewRequest{RequesterEmail: "mgr@corp.com"})
	assert.ErrorIs(t, err, attendance.ErrSourceUnavailable)
}

func TestGetOverview_ResolverFailureShortCircuits(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{err: directory.ErrSourceUnavailable}
	attendanceFake := &fakeAttendanceService{}

	svc := NewDashboardService(resolver, attendanceFake, &fakeProductivityService{})

	_, err := svc.GetOverview(context.Background(), dashboard.OverviewRequest{RequesterEmail: "mgr@corp.com"})
	assert.ErrorIs(t, err, directory.ErrSourceUnavailable)
	assert.Empty(t, attendanceFake.gotReq.RequesterEmail)
}
