package attendance

import "time"

// AttendanceEvent is the single raw-fact record per employee per calendar
// day. Created on first check-in, mutated on check-out or HR correction.
// Unique per (EmployeeID, Date); the database constraint is the arbiter
// for concurrent writers.
type AttendanceEvent struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ScheduleID *string

	CheckIn  *time.Time
	CheckOut *time.Time

	LocationTag       *string
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	SubmissionKind SubmissionKind

	// OverrideTag is set only by manual corrections. When present it is
	// authoritative and the resolver skips the exception lookup.
	OverrideTag *StatusTag

	Note *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubmissionKind string

const (
	SubmissionNormal           SubmissionKind = "normal"
	SubmissionManualCorrection SubmissionKind = "manual_correction"
)

// StatusTag is the canonical categorical attendance outcome.
type StatusTag string

const (
	TagPresent        StatusTag = "present"
	TagLate           StatusTag = "late"
	TagOnLeave        StatusTag = "on_leave"
	TagSick           StatusTag = "sick"
	TagAnnualLeave    StatusTag = "annual_leave"
	TagAbsentNoPermit StatusTag = "absent_no_permit"
	TagDayOff         StatusTag = "day_off"
	TagUnknown        StatusTag = "unknown"
)

var StatusTagValues = []string{
	string(TagPresent),
	string(TagLate),
	string(TagOnLeave),
	string(TagSick),
	string(TagAnnualLeave),
	string(TagAbsentNoPermit),
	string(TagDayOff),
	string(TagUnknown),
}

// IsValidStatusTag reports whether s names a known tag.
func IsValidStatusTag(s string) bool {
	for _, v := range StatusTagValues {
		if v == s {
			return true
		}
	}
	return false
}

// DerivedStatus is a pure derived value, recomputed on every read. It is
// never persisted as ground truth.
type DerivedStatus struct {
	EmployeeID   string
	Date         time.Time
	Tag          StatusTag
	LateMinutes  int
	EarlyMinutes int
}
