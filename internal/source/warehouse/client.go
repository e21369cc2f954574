package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the time-tracking data warehouse API. It serves both the
// attendance and the productivity side of the warehouse.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a warehouse client. When a token URL is configured the
// client authenticates via OAuth2 client credentials; otherwise requests go
// out unauthenticated (local development against a stub).
func NewClient(cfg config.WarehouseSourceConfig) *Client {
	var httpClient *http.Client
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = cfg.Timeout
	} else {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

// APIError represents a non-2xx reply from the warehouse.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("warehouse API error [%d]: %s", e.StatusCode, e.Message)
}

type attendanceRow struct {
	Email       string  `json:"email"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	HoursLogged float64 `json:"hours_logged"`
}

type attendanceListResponse struct {
	Data []attendanceRow `json:"data"`
}

// FetchOfficeAttendanceData returns raw daily attendance records within
// [start, end], optionally filtered to the given emails. Malformed rows are
// dropped and counted; they never abort the fetch.
func (c *Client) FetchOfficeAttendanceData(ctx context.Context, start, end time.Time, emails []string) ([]attendance.Record, error) {
	query := rangeQuery(start, end, emails)

	var payload attendanceListResponse
	if err := c.get(ctx, "/v1/attendance", query, &payload); err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(payload.Data))
	dropped := 0
	for _, row := range payload.Data {
		email := validator.NormalizeEmail(row.Email)
		date, ok := validator.IsValidDate(row.Date)
		if !validator.IsValidEmail(email) || !ok || row.HoursLogged < 0 {
			dropped++
			continue
		}
		records = append(records, attendance.Record{
			Email:       email,
			Date:        date,
			Location:    attendance.ParseLocation(row.Location),
			HoursLogged: row.HoursLogged,
		})
	}
	if dropped > 0 {
		slog.Warn("dropped malformed attendance rows", "dropped", dropped, "kept", len(records))
	}
	return records, nil
}

type productivityRow struct {
	Email               string `json:"email"`
	Date                string `json:"date"`
	ProductiveSeconds   int64  `json:"productive_seconds"`
	UnproductiveSeconds int64  `json:"unproductive_seconds"`
	NeutralSeconds      int64  `json:"neutral_seconds"`
	TotalSeconds        int64  `json:"total_seconds"`
}

type productivityListResponse struct {
	Data []productivityRow `json:"data"`
}

// FetchProductivityData returns per-day telemetry within [start, end],
// optionally filtered to the given emails.
func (c *Client) FetchProductivityData(ctx context.Context, start, end time.Time, emails []string) ([]productivity.Record, error) {
	query := rangeQuery(start, end, emails)

	var payload productivityListResponse
	if err := c.get(ctx, "/v1/productivity", query, &payload); err != nil {
		return nil, err
	}

	records := make([]productivity.Record, 0, len(payload.Data))
	dropped := 0
	for _, row := range payload.Data {
		email := validator.NormalizeEmail(row.Email)
		date, ok := validator.IsValidDate(row.Date)
		if !validator.IsValidEmail(email) || !ok || row.TotalSeconds < 0 {
			dropped++
			continue
		}
		records = append(records, productivity.Record{
			Email:               email,
			Date:                date,
			ProductiveSeconds:   row.ProductiveSeconds,
			UnproductiveSeconds: row.UnproductiveSeconds,
			NeutralSeconds:      row.NeutralSeconds,
			TotalSeconds:        row.TotalSeconds,
		})
	}
	if dropped > 0 {
		slog.Warn("dropped malformed productivity rows", "dropped", dropped, "kept", len(records))
	}
	return records, nil
}

func rangeQuery(start, end time.Time, emails []string) url.Values {
	query := url.Values{}
	query.Set("start", start.Format("2006-01-02"))
	query.Set("end", end.Format("2006-01-02"))
	if len(emails) > 0 {
		query.Set("emails", strings.Join(emails, ","))
	}
	return query
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build warehouse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call warehouse API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode warehouse response: %w", err)
	}
	return nil
}
