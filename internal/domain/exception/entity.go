package exception

import "time"

// Request is an independently approved leave/overtime request produced by
// the approval workflow. Read-only in this service; the registry only
// ever surfaces approved rows.
type Request struct {
	ID              string
	EmployeeID      string
	StartDate       time.Time
	EndDate         time.Time
	Kind            Kind
	Status          RequestStatus
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Kind string

const (
	KindLeaveLate   Kind = "leave_late"
	KindLeaveEarly  Kind = "leave_early"
	KindLeaveAbsent Kind = "leave_absent"
	KindSickLeave   Kind = "sick_leave"
	KindAnnualLeave Kind = "annual_leave"
	KindOvertime    Kind = "overtime"
)

type RequestStatus string

const (
	StatusWaitingApproval RequestStatus = "waiting_approval"
	StatusApproved        RequestStatus = "approved"
	StatusRejected        RequestStatus = "rejected"
	StatusCancelled       RequestStatus = "cancelled"
)

// Covers reports whether the request's date range includes the given day.
// Comparison is by calendar day in the dates' own location.
func (r Request) Covers(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(r.StartDate)) && !day.After(truncateToDay(r.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
