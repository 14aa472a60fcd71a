package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("work schedule not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)
