package http

import (
	"net/http"
	"strconv"

	"github.com/worklens/worklens-backend-go/internal/domain/dashboard"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Combined access + compliance + productivity overview
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetOverview handles GET /reports/overview
func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := requesterEmail(ctx)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req := dashboard.OverviewRequest{
		RequesterEmail: email,
	}

	if weeksBackStr := r.URL.Query().Get("weeks_back"); weeksBackStr != "" {
		weeksBack, err := strconv.Atoi(weeksBackStr)
		if err != nil {
			response.BadRequest(w, "invalid weeks_back parameter", nil)
			return
		}
		req.WeeksBack = weeksBack
	}

	result, err := h.dashboardService.GetOverview(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
