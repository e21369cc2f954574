package attendance

import "errors"

// Attendance domain errors
var (
	ErrSourceUnavailable = errors.New("attendance warehouse is unavailable")
)
