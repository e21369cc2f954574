package dashboard

import (
	"context"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/dashboard"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	resolver            access.Resolver
	attendanceService   attendance.Service
	productivityService productivity.Service
	now                 func() time.Time
}

func NewDashboardService(
	resolver access.Resolver,
	attendanceService attendance.Service,
	productivityService productivity.Service,
) dashboard.Service {
	return &DashboardServiceImpl{
		resolver:            resolver,
		attendanceService:   attendanceService,
		productivityService: productivityService,
		now:                 time.Now,
	}
}

// GetOverview runs the compliance report and the org productivity summary in
// parallel; both are independently scoped to the requester, so neither
// depends on the other's result. All-or-nothing: either fetch failing fails
// the overview.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context, req dashboard.OverviewRequest) (dashboard.OverviewResponse, error) {
	if req.WeeksBack == 0 {
		req.WeeksBack = attendance.DefaultWeeksBack
	}

	resolved, err := s.resolver.Resolve(ctx, req.RequesterEmail)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	today := s.now().UTC()
	rangeEnd := today.Format("2006-01-02")
	rangeStart := today.AddDate(0, 0, -7*req.WeeksBack).Format("2006-01-02")

	var (
		complianceReport attendance.ComplianceReport
		summaryReport    productivity.SummaryReport
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		complianceReport, err = s.attendanceService.GetComplianceReport(gCtx, attendance.ComplianceReportRequest{
			RequesterEmail: req.RequesterEmail,
			WeeksBack:      req.WeeksBack,
		})
		return err
	})

	g.Go(func() error {
		var err error
		summaryReport, err = s.productivityService.GetSummary(gCtx, productivity.SummaryRequest{
			RequesterEmail: req.RequesterEmail,
			Start:          rangeStart,
			End:            rangeEnd,
			GroupBy:        productivity.GroupByOrganization,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.OverviewResponse{}, err
	}

	response := dashboard.OverviewResponse{
		Access:      resolved.ToResponse(),
		Compliance:  complianceReport.Summary,
		RangeStart:  complianceReport.RangeStart,
		RangeEnd:    complianceReport.RangeEnd,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}
	if summaryReport.Organization != nil {
		response.Productivity = *summaryReport.Organization
	}
	return response, nil
}
