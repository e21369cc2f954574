package access

// ContextResponse is the wire shape of a resolved access context.
type ContextResponse struct {
	RequesterEmail    string   `json:"requester_email"`
	IsHRAdmin         bool     `json:"is_hr_admin"`
	IsManager         bool     `json:"is_manager"`
	DirectReportCount int      `json:"direct_report_count"`
	TotalReportCount  int      `json:"total_report_count"`
	AllowedEmails     []string `json:"allowed_emails"`
}

// ToResponse converts a Context into its wire shape.
func (c Context) ToResponse() ContextResponse {
	return ContextResponse{
		RequesterEmail:    c.RequesterEmail,
		IsHRAdmin:         c.IsHRAdmin,
		IsManager:         c.IsManager,
		DirectReportCount: c.DirectReportCount,
		TotalReportCount:  c.TotalReportCount,
		AllowedEmails:     c.AllowedEmails(),
	}
}
