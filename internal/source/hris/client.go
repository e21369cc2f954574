package hris

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// Client talks to the HRIS directory API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.DirectorySourceConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// APIError represents a non-2xx reply from the directory API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("directory API error [%d]: %s", e.StatusCode, e.Message)
}

// employeeRow is the loosely-typed wire shape. Rows are validated before they
// become directory.Employee values; invalid rows are dropped and counted, not
// parsed-or-thrown.
type employeeRow struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	DisplayName  string  `json:"display_name"`
	Department   string  `json:"department"`
	JobTitle     string  `json:"job_title"`
	Location     string  `json:"location"`
	SupervisorID *string `json:"supervisor_id"`
	IsActive     bool    `json:"is_active"`
}

type employeeListResponse struct {
	Data []employeeRow `json:"data"`
}

// FetchEmployeeDirectory returns the full directory snapshot, unfiltered.
func (c *Client) FetchEmployeeDirectory(ctx context.Context) ([]directory.Employee, error) {
	rows, err := c.fetchEmployees(ctx, "/v1/employees", nil)
	if err != nil {
		return nil, err
	}
	return c.toEmployees(rows, "directory"), nil
}

// FetchReportingStructure returns all transitive reports of a manager. The
// directory API de-cycles on its side; callers do not re-traverse the result.
func (c *Client) FetchReportingStructure(ctx context.Context, managerID string) ([]directory.Employee, error) {
	path := fmt.Sprintf("/v1/employees/%s/reports", url.PathEscape(managerID))
	rows, err := c.fetchEmployees(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return c.toEmployees(rows, "reporting_structure"), nil
}

func (c *Client) fetchEmployees(ctx context.Context, path string, query url.Values) ([]employeeRow, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call directory API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var payload employeeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	return payload.Data, nil
}

// toEmployees validates rows and converts the survivors. A row without an ID
// cannot be indexed at all and is dropped; a missing or malformed email keeps
// the row (it stays addressable by ID, just not by email).
func (c *Client) toEmployees(rows []employeeRow, source string) []directory.Employee {
	employees := make([]directory.Employee, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if validator.IsEmpty(row.ID) {
			dropped++
			continue
		}
		employees = append(employees, directory.Employee{
			ID:           row.ID,
			Email:        validator.NormalizeEmail(row.Email),
			DisplayName:  row.DisplayName,
			Department:   row.Department,
			JobTitle:     row.JobTitle,
			Location:     row.Location,
			SupervisorID: row.SupervisorID,
			IsActive:     row.IsActive,
		})
	}
	if dropped > 0 {
		slog.Warn("dropped malformed directory rows", "source", source, "dropped", dropped)
	}
	return employees
}
