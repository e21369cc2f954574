package attendance

import "context"

// Service generates weekly office-attendance compliance reports.
type Service interface {
	// GetComplianceReport builds the compliance report for the requester's
	// visibility scope over the last WeeksBack weeks. All-or-nothing: an
	// upstream fetch failure fails the whole report.
	GetComplianceReport(ctx context.Context, req ComplianceReportRequest) (ComplianceReport, error)
}
