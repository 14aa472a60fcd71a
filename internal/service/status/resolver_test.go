package status

import (
	"testing"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/exception"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func workDay(t *testing.T) schedule.WorkSchedule {
	t.Helper()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return schedule.WorkSchedule{
		ID:           "sched-1",
		EmployeeID:   "emp-1",
		Date:         date,
		PlannedStart: date.Add(8 * time.Hour),  // 08:00
		PlannedEnd:   date.Add(17 * time.Hour), // 17:00
		ShiftLabel:   schedule.ShiftRegular,
	}
}

func approved(kind exception.Kind, date time.Time) exception.Request {
	return exception.Request{
		ID:         "ex-1",
		EmployeeID: "emp-1",
		StartDate:  date,
		EndDate:    date,
		Kind:       kind,
		Status:     exception.StatusApproved,
	}
}

func eventAt(sched schedule.WorkSchedule, hour, minute int) *attendance.AttendanceEvent {
	in := time.Date(sched.Date.Year(), sched.Date.Month(), sched.Date.Day(), hour, minute, 0, 0, time.UTC)
	return &attendance.AttendanceEvent{
		ID:             "evt-1",
		EmployeeID:     sched.EmployeeID,
		Date:           sched.Date,
		CheckIn:        &in,
		SubmissionKind: attendance.SubmissionNormal,
	}
}

func TestResolve_CheckInWithinTolerance(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	st := r.Resolve(&sched, eventAt(sched, 8, 10), nil)

	assert.Equal(t, attendance.TagPresent, st.Tag)
	assert.Equal(t, 0, st.LateMinutes)
}

func TestResolve_CheckInPastTolerance(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	st := r.Resolve(&sched, eventAt(sched, 8, 20), nil)

	assert.Equal(t, attendance.TagLate, st.Tag)
	// measured from the 08:15 threshold, not the 08:00 start
	assert.Equal(t, 5, st.LateMinutes)
}

func TestResolve_LatePermitKeepsPresentTag(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	st := r.Resolve(&sched, eventAt(sched, 8, 20), []exception.Request{
		approved(exception.KindLeaveLate, sched.Date),
	})

	assert.Equal(t, attendance.TagPresent, st.Tag)
	// minutes are still reported even when the permit suppresses the tag
	assert.Equal(t, 5, st.LateMinutes)
}

func TestResolve_NoCheckInExceptionLadder(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	cases := []struct {
		name       string
		exceptions []exception.Request
		want       attendance.StatusTag
	}{
		{"approved leave", []exception.Request{approved(exception.KindLeaveAbsent, sched.Date)}, attendance.TagOnLeave},
		{"annual leave", []exception.Request{approved(exception.KindAnnualLeave, sched.Date)}, attendance.TagAnnualLeave},
		{"sick leave", []exception.Request{approved(exception.KindSickLeave, sched.Date)}, attendance.TagSick},
		{"no exceptions", nil, attendance.TagAbsentNoPermit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := r.Resolve(&sched, nil, c.exceptions)
			assert.Equal(t, c.want, st.Tag)
		})
	}
}

func TestResolve_LeaveWinsOverAnnualAndSick(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	st := r.Resolve(&sched, nil, []exception.Request{
		approved(exception.KindSickLeave, sched.Date),
		approved(exception.KindAnnualLeave, sched.Date),
		approved(exception.KindLeaveAbsent, sched.Date),
	})

	assert.Equal(t, attendance.TagOnLeave, st.Tag)
}

func TestResolve_UncoveredExceptionIgnored(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	st := r.Resolve(&sched, nil, []exception.Request{
		approved(exception.KindLeaveAbsent, sched.Date.AddDate(0, 0, -3)),
	})

	assert.Equal(t, attendance.TagAbsentNoPermit, st.Tag)
}

func TestResolve_DayOffBeatsEverything(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)
	sched.ShiftLabel = schedule.ShiftOff

	st := r.Resolve(&sched, eventAt(sched, 8, 20), []exception.Request{
		approved(exception.KindLeaveAbsent, sched.Date),
	})

	assert.Equal(t, attendance.TagDayOff, st.Tag)
	assert.Equal(t, 0, st.LateMinutes)
}

func TestResolve_MissingScheduleDegradesToUnknown(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)
	evt := eventAt(sched, 8, 0)

	st := r.Resolve(nil, evt, nil)

	assert.Equal(t, attendance.TagUnknown, st.Tag)
	assert.Equal(t, evt.EmployeeID, st.EmployeeID)
}

func TestResolve_ManualCorrectionOverrideIsAuthoritative(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	override := attendance.TagPresent
	evt := eventAt(sched, 9, 0) // an hour late on the raw times
	evt.SubmissionKind = attendance.SubmissionManualCorrection
	evt.OverrideTag = &override

	// an approved leave_absent would normally never coexist with present;
	// the override bypasses the exception lookup entirely
	st := r.Resolve(&sched, evt, []exception.Request{
		approved(exception.KindLeaveAbsent, sched.Date),
	})

	assert.Equal(t, attendance.TagPresent, st.Tag)
	assert.Equal(t, 45, st.LateMinutes)
}

func TestResolve_EarlyMinutesReported(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)

	evt := eventAt(sched, 8, 0)
	out := time.Date(sched.Date.Year(), sched.Date.Month(), sched.Date.Day(), 16, 30, 0, 0, time.UTC)
	evt.CheckOut = &out

	st := r.Resolve(&sched, evt, nil)

	assert.Equal(t, attendance.TagPresent, st.Tag)
	assert.Equal(t, 30, st.EarlyMinutes)
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(15)
	sched := workDay(t)
	evt := eventAt(sched, 8, 20)
	exs := []exception.Request{approved(exception.KindLeaveLate, sched.Date)}

	first := r.Resolve(&sched, evt, exs)
	second := r.Resolve(&sched, evt, exs)

	assert.Equal(t, first, second)
}

func TestLateMinutes_ExactThresholdIsNotLate(t *testing.T) {
	r := NewResolver(15)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, r.LateMinutes(start, start.Add(15*time.Minute)))
	assert.Equal(t, 1, r.LateMinutes(start, start.Add(16*time.Minute)))
}

func TestNewResolver_NegativeToleranceFallsBack(t *testing.T) {
	r := NewResolver(-1)
	assert.Equal(t, time.Duration(DefaultToleranceMinutes)*time.Minute, r.Tolerance())
}
