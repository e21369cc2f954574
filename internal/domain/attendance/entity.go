package attendance

import (
	"time"
)

type Location string

const (
	LocationOffice  Location = "office"
	LocationRemote  Location = "remote"
	LocationUnknown Location = "unknown"
)

// ParseLocation maps a raw warehouse location value onto a known Location.
// Anything unrecognized is Unknown: it still counts as a day with data but
// neither office nor remote.
func ParseLocation(raw string) Location {
	switch Location(raw) {
	case LocationOffice, LocationRemote:
		return Location(raw)
	default:
		return LocationUnknown
	}
}

// Record is a raw daily attendance event from the warehouse. A single
// employee+date may have several records (partial-day entries from different
// sources); they are deduplicated during aggregation, not upstream.
type Record struct {
	Email       string
	Date        time.Time
	Location    Location
	HoursLogged float64
}

// WeeklyCompliance is one employee's attendance folded over one Monday–Sunday
// week. Computed fresh on every report request, never persisted.
type WeeklyCompliance struct {
	Email             string
	WeekStart         time.Time
	OfficeDays        int
	RemoteDays        int
	TotalDaysWithData int
	IsCompliant       bool
}

// WeekStatus classifies the current (possibly incomplete) week.
type WeekStatus string

const (
	StatusCompliant    WeekStatus = "compliant"
	StatusAtRisk       WeekStatus = "at_risk"
	StatusNonCompliant WeekStatus = "non_compliant"
	StatusNoData       WeekStatus = "no_data"
)

// statusConcern orders statuses by how much attention they need,
// most concerning first.
var statusConcern = map[WeekStatus]int{
	StatusNonCompliant: 0,
	StatusAtRisk:       1,
	StatusNoData:       2,
	StatusCompliant:    3,
}

// Concern returns the report ordering rank of the status.
func (s WeekStatus) Concern() int {
	rank, ok := statusConcern[s]
	if !ok {
		return len(statusConcern)
	}
	return rank
}
