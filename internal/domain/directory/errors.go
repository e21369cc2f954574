package directory

import "errors"

// Directory domain errors
var (
	ErrSourceUnavailable = errors.New("employee directory source is unavailable")
	ErrEmptySnapshot     = errors.New("employee directory snapshot is empty")
)
