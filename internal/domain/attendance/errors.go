package attendance

import "errors"

// Attendance domain errors
var (
	// Recorder errors
	ErrAlreadyCheckedIn      = errors.New("check-in already recorded for this date")
	ErrAlreadyCheckedOut     = errors.New("check-out already recorded for this date")
	ErrNotCheckedIn          = errors.New("no check-in recorded for this date")
	ErrScheduleMismatch      = errors.New("schedule does not belong to this employee")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
)
