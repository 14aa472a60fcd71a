package schedule

import "time"

// WorkSchedule is a planned shift assignment produced by the
// schedule-planning subsystem. Rows are read-mostly here; the only column
// this service writes is the cached status hint.
type WorkSchedule struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	PlannedStart time.Time
	PlannedEnd   time.Time
	ShiftLabel   ShiftLabel

	// CachedStatusTag is an invalidate-and-recompute hint maintained by the
	// background refresh job. Never authoritative; every read path calls
	// the resolver instead.
	CachedStatusTag *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	Department   *string
}

type ShiftLabel string

const (
	ShiftRegular ShiftLabel = "regular"
	ShiftMorning ShiftLabel = "morning"
	ShiftEvening ShiftLabel = "evening"
	ShiftNight   ShiftLabel = "night"
	ShiftOff     ShiftLabel = "off"
	ShiftHoliday ShiftLabel = "holiday"
)

var ShiftLabelValues = []string{
	string(ShiftRegular),
	string(ShiftMorning),
	string(ShiftEvening),
	string(ShiftNight),
	string(ShiftOff),
	string(ShiftHoliday),
}

// IsDayOff reports whether no work is planned for the day.
func (s ShiftLabel) IsDayOff() bool {
	return s == ShiftOff || s == ShiftHoliday
}
