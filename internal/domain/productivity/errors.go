package productivity

import "errors"

// Productivity domain errors
var (
	ErrSourceUnavailable = errors.New("productivity warehouse is unavailable")
)
