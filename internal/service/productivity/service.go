package productivity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

type ProductivityServiceImpl struct {
	resolver         access.Resolver
	directoryService directory.Service
	source           productivity.Source
	cache            productivity.CacheRepository
	now              func() time.Time
}

func NewProductivityService(
	resolver access.Resolver,
	directoryService directory.Service,
	source productivity.Source,
	cache productivity.CacheRepository,
) productivity.Service {
	return &ProductivityServiceImpl{
		resolver:         resolver,
		directoryService: directoryService,
		source:           source,
		cache:            cache,
		now:              time.Now,
	}
}

func (s *ProductivityServiceImpl) GetSummary(ctx context.Context, req productivity.SummaryRequest) (productivity.SummaryReport, error) {
	if err := req.Validate(); err != nil {
		return productivity.SummaryReport{}, err
	}

	idx, err := s.directoryService.Snapshot(ctx)
	if err != nil {
		return productivity.SummaryReport{}, err
	}
	resolved := s.resolver.ResolveSnapshot(idx, req.RequesterEmail)

	records, err := s.source.FetchProductivityData(ctx, req.RangeStart, req.RangeEnd, resolved.AllowedEmails())
	if err != nil {
		slog.Warn("productivity warehouse unreachable, trying cache", "error", err)
		records, err = s.recordsFromCache(ctx, req, resolved.AllowedEmails(), err)
		if err != nil {
			return productivity.SummaryReport{}, err
		}
	}

	report := productivity.SummaryReport{
		RangeStart:  req.RangeStart.Format("2006-01-02"),
		RangeEnd:    req.RangeEnd.Format("2006-01-02"),
		GroupBy:     req.GroupBy,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Page:        req.Page,
		Limit:       req.Limit,
	}

	switch req.GroupBy {
	case productivity.GroupByEmployee:
		summaries, drops := SummarizeEmployees(records, idx)
		summaries = filterEmployees(summaries, req.Search)
		sortEmployees(summaries, req.SortBy, req.Descending)
		report.TotalItems = len(summaries)
		report.Employees = paginate(summaries, req.Page, req.Limit)
		report.Dropped = drops

	case productivity.GroupByDepartment:
		summaries, drops := SummarizeDepartments(records, idx)
		summaries = filterDepartments(summaries, req.Search)
		sortDepartments(summaries, req.SortBy, req.Descending)
		report.TotalItems = len(summaries)
		report.Departments = paginate(summaries, req.Page, req.Limit)
		report.Dropped = drops

	case productivity.GroupByOrganization:
		summary, drops := SummarizeOrganization(records, idx)
		report.TotalItems = 1
		report.Organization = &summary
		report.Dropped = drops
	}

	if report.Dropped.Total() > 0 {
		slog.Info("productivity records dropped during aggregation",
			"unknown_email", report.Dropped.UnknownEmail,
			"malformed", report.Dropped.Malformed)
	}

	return report, nil
}

// recordsFromCache serves the last synced warehouse rows when the live fetch
// fails. The report stays internally consistent, just as stale as the last
// sync. An empty cache window is treated as an outage rather than reported
// as a genuinely empty range.
func (s *ProductivityServiceImpl) recordsFromCache(ctx context.Context, req productivity.SummaryRequest, emails []string, sourceErr error) ([]productivity.Record, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("%w: %v", productivity.ErrSourceUnavailable, sourceErr)
	}

	records, cacheErr := s.cache.ListRange(ctx, req.RangeStart, req.RangeEnd, emails)
	if cacheErr != nil {
		return nil, fmt.Errorf("%w: source: %v, cache: %v", productivity.ErrSourceUnavailable, sourceErr, cacheErr)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: cache has no rows in range: %v", productivity.ErrSourceUnavailable, sourceErr)
	}

	slog.Info("serving stale productivity data from cache", "records", len(records))
	return records, nil
}

// filterEmployees keeps summaries whose display name or department contains
// the search term, case-insensitively. Applied post-aggregation.
func filterEmployees(summaries []productivity.EmployeeSummary, search string) []productivity.EmployeeSummary {
	if strings.TrimSpace(search) == "" {
		return summaries
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := summaries[:0:0]
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.DisplayName), needle) ||
			strings.Contains(strings.ToLower(s.Department), needle) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func filterDepartments(summaries []productivity.DepartmentSummary, search string) []productivity.DepartmentSummary {
	if strings.TrimSpace(search) == "" {
		return summaries
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := summaries[:0:0]
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Department), needle) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func sortEmployees(summaries []productivity.EmployeeSummary, field productivity.SortField, descending bool) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch field {
		case productivity.SortByScore:
			return compareNullableScores(a.AvgProductivityScore, b.AvgProductivityScore, descending)
		case productivity.SortByHours:
			if descending {
				return a.TotalProductiveHours > b.TotalProductiveHours
			}
			return a.TotalProductiveHours < b.TotalProductiveHours
		case productivity.SortByDays:
			if descending {
				return a.DaysTracked > b.DaysTracked
			}
			return a.DaysTracked < b.DaysTracked
		default:
			if descending {
				return a.DisplayName > b.DisplayName
			}
			return a.DisplayName < b.DisplayName
		}
	})
}

func sortDepartments(summaries []productivity.DepartmentSummary, field productivity.SortField, descending bool) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch field {
		case productivity.SortByScore:
			return compareNullableScores(a.AvgProductivityScore, b.AvgProductivityScore, descending)
		case productivity.SortByHours:
			if descending {
				return a.TotalProductiveHours > b.TotalProductiveHours
			}
			return a.TotalProductiveHours < b.TotalProductiveHours
		case productivity.SortByDays:
			if descending {
				return a.DaysTracked > b.DaysTracked
			}
			return a.DaysTracked < b.DaysTracked
		default:
			if descending {
				return a.Department > b.Department
			}
			return a.Department < b.Department
		}
	})
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
