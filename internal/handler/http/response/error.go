package response

import (
	"errors"
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Upstream source failures: the report is all-or-nothing, so these
	// surface as a failed generation rather than a partial report.
	case errors.Is(err, directory.ErrSourceUnavailable):
		BadGateway(w, "Employee directory is unavailable")
	case errors.Is(err, attendance.ErrSourceUnavailable):
		BadGateway(w, "Attendance warehouse is unavailable")
	case errors.Is(err, productivity.ErrSourceUnavailable):
		BadGateway(w, "Productivity warehouse is unavailable")

	case errors.Is(err, directory.ErrEmptySnapshot):
		InternalServerError(w, "Employee directory snapshot is empty")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
