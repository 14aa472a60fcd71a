package response

import (
	"errors"
	"net/http"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/pkg/validator"
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
	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, use YYYY-MM-DD", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrScheduleMismatch):
		Forbidden(w, "Schedule does not belong to this employee")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Check-in already recorded for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Check-out already recorded for this date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		PreconditionFailed(w, "No check-in recorded for this date")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
