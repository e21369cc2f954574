package dashboard

import "context"

// Service assembles the combined overview for the landing page.
type Service interface {
	GetOverview(ctx context.Context, req OverviewRequest) (OverviewResponse, error)
}
