package http

import (
	"net/http"
	"strconv"

	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Weekly office-attendance compliance report
	GetComplianceReport(w http.ResponseWriter, r *http.Request)

	// Productivity summary (employee / department / organization scope)
	GetProductivitySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	attendanceService   attendance.Service
	productivityService productivity.Service
}

func NewReportHandler(attendanceService attendance.Service, productivityService productivity.Service) ReportHandler {
	return &reportHandlerImpl{
		attendanceService:   attendanceService,
		productivityService: productivityService,
	}
}

// GetComplianceReport handles GET /reports/compliance
func (h *reportHandlerImpl) GetComplianceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := requesterEmail(ctx)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req := attendance.ComplianceReportRequest{
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

	result, err := h.attendanceService.GetComplianceReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetProductivitySummary handles GET /reports/productivity
func (h *reportHandlerImpl) GetProductivitySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := requesterEmail(ctx)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	query := r.URL.Query()
	req := productivity.SummaryRequest{
		RequesterEmail: email,
		Start:          query.Get("start"),
		End:            query.Get("end"),
		GroupBy:        productivity.GroupBy(query.Get("group_by")),
		Search:         query.Get("search"),
		SortBy:         productivity.SortField(query.Get("sort")),
		Descending:     query.Get("order") == "desc",
	}

	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			response.BadRequest(w, "invalid page parameter", nil)
			return
		}
		req.Page = page
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "invalid limit parameter", nil)
			return
		}
		req.Limit = limit
	}

	result, err := h.productivityService.GetSummary(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = (result.TotalItems + result.Limit - 1) / result.Limit
	}
	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
		TotalPages: totalPages,
	})
}
