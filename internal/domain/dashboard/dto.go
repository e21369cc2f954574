package dashboard

import (
	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

// OverviewRequest asks for the combined landing-page view: the requester's
// access context, the compliance summary, and the org productivity summary.
type OverviewRequest struct {
	RequesterEmail string
	WeeksBack      int
}

type OverviewResponse struct {
	Access       access.ContextResponse       `json:"access"`
	Compliance   attendance.ComplianceSummary `json:"compliance"`
	Productivity productivity.OrgSummary      `json:"productivity"`
	RangeStart   string                       `json:"range_start"`
	RangeEnd     string                       `json:"range_end"`
	GeneratedAt  string                       `json:"generated_at"`
}
