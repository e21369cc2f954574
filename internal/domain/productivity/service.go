package productivity

import "context"

// Service folds raw telemetry into role-scoped summary statistics.
type Service interface {
	// GetSummary builds the productivity summary for the requester's
	// visibility scope over the requested date range.
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryReport, error)
}
