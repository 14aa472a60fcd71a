package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/exception"
	"github.com/arventa/attendance-backend-go/internal/domain/report"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/service/status"
)

type ReportServiceImpl struct {
	schedules  schedule.Provider
	events     attendance.EventRepository
	exceptions exception.Registry
	resolver   *status.Resolver
}

func NewReportService(
	schedules schedule.Provider,
	events attendance.EventRepository,
	exceptions exception.Registry,
	resolver *status.Resolver,
) report.ReportService {
	return &ReportServiceImpl{
		schedules:  schedules,
		events:     events,
		exceptions: exceptions,
		resolver:   resolver,
	}
}

const dayFormat = "2006-01-02"

// GetDailyStatus implements report.ReportService.
func (s *ReportServiceImpl) GetDailyStatus(ctx context.Context, employeeID string, date string) (report.DailyStatusResponse, error) {
	day, err := time.Parse(dayFormat, date)
	if err != nil {
		return report.DailyStatusResponse{}, schedule.ErrInvalidDateFormat
	}

	var sched *schedule.WorkSchedule
	found, err := s.schedules.GetByEmployeeAndDate(ctx, employeeID, day)
	switch {
	case err == nil:
		sched = &found
	case errors.Is(err, schedule.ErrScheduleNotFound):
		// degrade to the unknown tag below, never an error
	default:
		return report.DailyStatusResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	event, err := s.events.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return report.DailyStatusResponse{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	exceptions, err := s.exceptions.ListApproved(ctx, employeeID, day, day)
	if err != nil {
		return report.DailyStatusResponse{}, fmt.Errorf("failed to list approved exceptions: %w", err)
	}

	st := s.resolver.Resolve(sched, event, exceptions)

	return report.DailyStatusResponse{
		EmployeeID:   employeeID,
		Date:         day.Format(dayFormat),
		Tag:          string(st.Tag),
		LateMinutes:  st.LateMinutes,
		EarlyMinutes: st.EarlyMinutes,
	}, nil
}

// GetRangeSummary implements report.ReportService. Exactly three bulk
// queries per range; each scheduled day is then resolved in memory. An
// employee with zero scheduled days gets a zero-filled summary.
func (s *ReportServiceImpl) GetRangeSummary(ctx context.Context, req report.RangeSummaryRequest) (report.AggregateSummary, error) {
	if err := req.Validate(); err != nil {
		return report.AggregateSummary{}, err
	}

	start, _ := time.Parse(dayFormat, req.StartDate)
	end, _ := time.Parse(dayFormat, req.EndDate)

	schedules, err := s.schedules.ListForRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return report.AggregateSummary{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	events, err := s.events.ListForRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return report.AggregateSummary{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	exceptions, err := s.exceptions.ListApproved(ctx, req.EmployeeID, start, end)
	if err != nil {
		return report.AggregateSummary{}, fmt.Errorf("failed to list approved exceptions: %w", err)
	}

	eventsByDay := make(map[string]*attendance.AttendanceEvent, len(events))
	for i := range events {
		eventsByDay[events[i].Date.Format(dayFormat)] = &events[i]
	}

	summary := report.AggregateSummary{
		EmployeeID:    req.EmployeeID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		LateBreakdown: []report.DailyLateEntry{},
	}

	for i := range schedules {
		sched := &schedules[i]
		day := sched.Date.Format(dayFormat)
		st := s.resolver.Resolve(sched, eventsByDay[day], exceptions)

		summary.ScheduledDays++
		countTag(&summary, st.Tag)

		if st.LateMinutes > 0 {
			summary.TotalLateMinutes += st.LateMinutes
			summary.LateBreakdown = append(summary.LateBreakdown, report.DailyLateEntry{
				Date:        day,
				LateMinutes: st.LateMinutes,
			})
		}
	}

	var overtimeMinutes int
	for _, ex := range exceptions {
		if ex.Kind == exception.KindOvertime && ex.Status == exception.StatusApproved {
			overtimeMinutes += ex.DurationMinutes
		}
	}
	summary.OvertimeHours = float64(overtimeMinutes) / 60.0

	return summary, nil
}

// GetOrgDailyBreakdown implements report.ReportService.
func (s *ReportServiceImpl) GetOrgDailyBreakdown(ctx context.Context, date string, department *string) ([]report.EmployeeDailyStatus, error) {
	day, err := time.Parse(dayFormat, date)
	if err != nil {
		return nil, schedule.ErrInvalidDateFormat
	}

	schedules, err := s.schedules.ListForDate(ctx, day, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	events, err := s.events.ListForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	exceptions, err := s.exceptions.ListApprovedForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved exceptions: %w", err)
	}

	eventsByEmployee := make(map[string]*attendance.AttendanceEvent, len(events))
	for i := range events {
		eventsByEmployee[events[i].EmployeeID] = &events[i]
	}

	exceptionsByEmployee := make(map[string][]exception.Request)
	for _, ex := range exceptions {
		exceptionsByEmployee[ex.EmployeeID] = append(exceptionsByEmployee[ex.EmployeeID], ex)
	}

	rows := make([]report.EmployeeDailyStatus, 0, len(schedules))
	for i := range schedules {
		sched := &schedules[i]
		st := s.resolver.Resolve(sched, eventsByEmployee[sched.EmployeeID], exceptionsByEmployee[sched.EmployeeID])

		rows = append(rows, report.EmployeeDailyStatus{
			EmployeeID:   sched.EmployeeID,
			EmployeeName: sched.EmployeeName,
			Department:   sched.Department,
			Date:         day.Format(dayFormat),
			Tag:          string(st.Tag),
			LateMinutes:  st.LateMinutes,
			EarlyMinutes: st.EarlyMinutes,
		})
	}

	return rows, nil
}

func countTag(summary *report.AggregateSummary, tag attendance.StatusTag) {
	switch tag {
	case attendance.TagPresent:
		summary.PresentDays++
	case attendance.TagLate:
		summary.LateDays++
	case attendance.TagOnLeave:
		summary.OnLeaveDays++
	case attendance.TagSick:
		summary.SickDays++
	case attendance.TagAnnualLeave:
		summary.AnnualLeaveDays++
	case attendance.TagAbsentNoPermit:
		summary.AbsentNoPermitDays++
	case attendance.TagDayOff:
		summary.DayOffDays++
	default:
		summary.UnknownDays++
	}
}
