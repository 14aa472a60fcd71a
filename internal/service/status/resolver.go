package status

import (
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/exception"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
)

const DefaultToleranceMinutes = 15

// Resolver derives the canonical daily attendance status from a planned
// schedule, the day's raw event and the approved exceptions covering the
// day. It performs no I/O and no writes; the same inputs always produce
// the same output. Every read path goes through here, stored status
// columns are hints only.
type Resolver struct {
	toleranceMinutes int
}

func NewResolver(toleranceMinutes int) *Resolver {
	if toleranceMinutes < 0 {
		toleranceMinutes = DefaultToleranceMinutes
	}
	return &Resolver{toleranceMinutes: toleranceMinutes}
}

func (r *Resolver) Tolerance() time.Duration {
	return time.Duration(r.toleranceMinutes) * time.Minute
}

// Resolve evaluates the priority rules in order, first match wins:
// day-off shift, manual-correction override, no-check-in exception ladder,
// then lateness against the tolerance-adjusted threshold. A nil schedule
// degrades to the unknown tag so batch callers are never aborted by one
// bad record. An empty exception list is the normal case, not an error.
func (r *Resolver) Resolve(sched *schedule.WorkSchedule, event *attendance.AttendanceEvent, exceptions []exception.Request) attendance.DerivedStatus {
	if sched == nil {
		st := attendance.DerivedStatus{Tag: attendance.TagUnknown}
		if event != nil {
			st.EmployeeID = event.EmployeeID
			st.Date = event.Date
		}
		return st
	}

	st := attendance.DerivedStatus{
		EmployeeID: sched.EmployeeID,
		Date:       sched.Date,
	}

	if sched.ShiftLabel.IsDayOff() {
		st.Tag = attendance.TagDayOff
		return st
	}

	// Manual corrections carry an authoritative tag; the exception lookup
	// is bypassed but minute counts still come from the recorded times.
	if event != nil && event.SubmissionKind == attendance.SubmissionManualCorrection && event.OverrideTag != nil {
		st.Tag = *event.OverrideTag
		if event.CheckIn != nil {
			st.LateMinutes = r.LateMinutes(sched.PlannedStart, *event.CheckIn)
		}
		if event.CheckOut != nil {
			st.EarlyMinutes = earlyMinutes(sched.PlannedEnd, *event.CheckOut)
		}
		return st
	}

	if event == nil || event.CheckIn == nil {
		switch {
		case hasApproved(exceptions, exception.KindLeaveAbsent, sched.Date):
			st.Tag = attendance.TagOnLeave
		case hasApproved(exceptions, exception.KindAnnualLeave, sched.Date):
			st.Tag = attendance.TagAnnualLeave
		case hasApproved(exceptions, exception.KindSickLeave, sched.Date):
			st.Tag = attendance.TagSick
		default:
			st.Tag = attendance.TagAbsentNoPermit
		}
		return st
	}

	st.LateMinutes = r.LateMinutes(sched.PlannedStart, *event.CheckIn)
	if event.CheckOut != nil {
		st.EarlyMinutes = earlyMinutes(sched.PlannedEnd, *event.CheckOut)
	}

	if st.LateMinutes > 0 && !hasApproved(exceptions, exception.KindLeaveLate, sched.Date) {
		st.Tag = attendance.TagLate
	} else {
		st.Tag = attendance.TagPresent
	}

	return st
}

// LateMinutes measures whole minutes past the tolerance-adjusted
// threshold (plannedStart + tolerance). The same convention feeds both
// tagging and reporting; an 08:20 check-in against an 08:00 start with
// the default 15 minute tolerance yields 5.
func (r *Resolver) LateMinutes(plannedStart, checkIn time.Time) int {
	threshold := plannedStart.Add(r.Tolerance())
	if !checkIn.After(threshold) {
		return 0
	}
	return int(checkIn.Sub(threshold).Minutes())
}

func earlyMinutes(plannedEnd, checkOut time.Time) int {
	if !checkOut.Before(plannedEnd) {
		return 0
	}
	return int(plannedEnd.Sub(checkOut).Minutes())
}

func hasApproved(exceptions []exception.Request, kind exception.Kind, date time.Time) bool {
	for _, ex := range exceptions {
		if ex.Kind == kind && ex.Status == exception.StatusApproved && ex.Covers(date) {
			return true
		}
	}
	return false
}
