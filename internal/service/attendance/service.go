package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/arventa/attendance-backend-go/internal/config"
	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/pkg/utils"
	"github.com/arventa/attendance-backend-go/internal/service/status"
	"github.com/google/uuid"
)

type RecorderServiceImpl struct {
	schedules schedule.Provider
	events    attendance.EventRepository
	resolver  *status.Resolver
	worksites []config.Worksite
}

func NewRecorderService(
	schedules schedule.Provider,
	events attendance.EventRepository,
	resolver *status.Resolver,
	worksites []config.Worksite,
) attendance.RecorderService {
	return &RecorderServiceImpl{
		schedules: schedules,
		events:    events,
		resolver:  resolver,
		worksites: worksites,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.RecorderService.
func (s *RecorderServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	sched, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if sched.EmployeeID != employeeID {
		return attendance.EventResponse{}, attendance.ErrScheduleMismatch
	}

	nowUTC := time.Now().UTC()

	// Advisory pre-check for a friendly error; the unique key on
	// (employee_id, date) is the arbiter when two writers race.
	existing, err := s.events.GetByEmployeeAndDate(ctx, employeeID, sched.Date)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to load attendance event: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
	}

	event := attendance.AttendanceEvent{
		ID:               uuid.NewString(),
		EmployeeID:       employeeID,
		Date:             sched.Date,
		ScheduleID:       &sched.ID,
		CheckIn:          &nowUTC,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		LocationTag:      s.nearestWorksite(req.Latitude, req.Longitude),
		SubmissionKind:   attendance.SubmissionNormal,
		Note:             req.Note,
	}

	var saved attendance.AttendanceEvent
	if existing == nil {
		saved, err = s.events.Create(ctx, event)
	} else {
		// A correction may have created the row without a check-in;
		// fill it conditionally instead of inserting.
		event.ID = existing.ID
		saved, err = s.events.SetCheckIn(ctx, event)
	}
	if err != nil {
		return attendance.EventResponse{}, err
	}

	resp := mapEventToResponse(saved)
	late := s.resolver.LateMinutes(sched.PlannedStart, nowUTC)
	resp.LateMinutes = &late

	return resp, nil
}

// CheckOut implements attendance.RecorderService.
func (s *RecorderServiceImpl) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	sched, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if sched.EmployeeID != employeeID {
		return attendance.EventResponse{}, attendance.ErrScheduleMismatch
	}

	existing, err := s.events.GetByEmployeeAndDate(ctx, employeeID, sched.Date)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to load attendance event: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.EventResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.EventResponse{}, attendance.ErrAlreadyCheckedOut
	}

	nowUTC := time.Now().UTC()
	if !nowUTC.After(*existing.CheckIn) {
		return attendance.EventResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	existing.CheckOut = &nowUTC
	existing.CheckOutLatitude = req.Latitude
	existing.CheckOutLongitude = req.Longitude

	saved, err := s.events.SetCheckOut(ctx, *existing)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	resp := mapEventToResponse(saved)
	early := 0
	if nowUTC.Before(sched.PlannedEnd) {
		early = int(sched.PlannedEnd.Sub(nowUTC).Minutes())
	}
	resp.EarlyMinutes = &early

	return resp, nil
}

// Correct implements attendance.RecorderService. The explicit tag is
// authoritative; the event is flagged as a manual correction so audits
// can separate it from recorder-produced facts.
func (s *RecorderServiceImpl) Correct(ctx context.Context, req attendance.CorrectionRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	checkIn, checkOut := req.Times()
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return attendance.EventResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.EventResponse{}, schedule.ErrInvalidDateFormat
	}

	tag := attendance.StatusTag(req.Tag)
	event := attendance.AttendanceEvent{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Date:           date,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		SubmissionKind: attendance.SubmissionManualCorrection,
		OverrideTag:    &tag,
		Note:           &req.Note,
	}

	saved, err := s.events.UpsertCorrection(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(saved), nil
}

// nearestWorksite labels coordinates with the closest registered site
// within its radius. Label only; location is never enforced.
func (s *RecorderServiceImpl) nearestWorksite(lat, lon *float64) *string {
	if lat == nil || lon == nil {
		return nil
	}

	var best *config.Worksite
	var bestDistance float64
	for i := range s.worksites {
		site := &s.worksites[i]
		distance := utils.CalculateHaversineDistance(*lat, *lon, site.Latitude, site.Longitude)
		if distance > float64(site.RadiusMeters) {
			continue
		}
		if best == nil || distance < bestDistance {
			best = site
			bestDistance = distance
		}
	}

	if best == nil {
		return nil
	}
	return &best.Name
}

// mapEventToResponse converts an AttendanceEvent entity to EventResponse
func mapEventToResponse(evt attendance.AttendanceEvent) attendance.EventResponse {
	return attendance.EventResponse{
		ID:             evt.ID,
		EmployeeID:     evt.EmployeeID,
		Date:           evt.Date.Format("2006-01-02"),
		ScheduleID:     evt.ScheduleID,
		CheckInTime:    timePtrToString(evt.CheckIn),
		CheckOutTime:   timePtrToString(evt.CheckOut),
		LocationTag:    evt.LocationTag,
		SubmissionKind: string(evt.SubmissionKind),
		Note:           evt.Note,
		Latitude:       evt.CheckInLatitude,
		Longitude:      evt.CheckInLongitude,
	}
}
