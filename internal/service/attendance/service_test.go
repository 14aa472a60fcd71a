package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arventa/attendance-backend-go/internal/config"
	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/service/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduleProvider serves schedules from memory, keyed by ID.
type fakeScheduleProvider struct {
	byID map[string]schedule.WorkSchedule
}

func (f *fakeScheduleProvider) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	s, ok := f.byID[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleProvider) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (schedule.WorkSchedule, error) {
	for _, s := range f.byID {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			return s, nil
		}
	}
	return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleProvider) ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.WorkSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleProvider) ListForDate(ctx context.Context, date time.Time, department *string) ([]schedule.WorkSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleProvider) UpdateCachedStatus(ctx context.Context, scheduleID string, tag string) error {
	return nil
}

// fakeEventRepository mirrors the storage contract: one row per
// (employee, date), conditional writes, losers get the sentinel errors.
type fakeEventRepository struct {
	mu     sync.Mutex
	events map[string]attendance.AttendanceEvent
}

func newFakeEventRepository() *fakeEventRepository {
	return &fakeEventRepository{events: make(map[string]attendance.AttendanceEvent)}
}

func eventKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeEventRepository) Create(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := eventKey(event.EmployeeID, event.Date)
	if _, exists := f.events[key]; exists {
		return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedIn
	}
	f.events[key] = event
	return event, nil
}

func (f *fakeEventRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	evt, ok := f.events[eventKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := evt
	return &copied, nil
}

func (f *fakeEventRepository) SetCheckIn(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := eventKey(event.EmployeeID, event.Date)
	stored, ok := f.events[key]
	if !ok || stored.CheckIn != nil {
		return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedIn
	}
	stored.CheckIn = event.CheckIn
	stored.CheckInLatitude = event.CheckInLatitude
	stored.CheckInLongitude = event.CheckInLongitude
	stored.LocationTag = event.LocationTag
	f.events[key] = stored
	return stored, nil
}

func (f *fakeEventRepository) SetCheckOut(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := eventKey(event.EmployeeID, event.Date)
	stored, ok := f.events[key]
	if !ok || stored.CheckOut != nil {
		return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedOut
	}
	stored.CheckOut = event.CheckOut
	stored.CheckOutLatitude = event.CheckOutLatitude
	stored.CheckOutLongitude = event.CheckOutLongitude
	f.events[key] = stored
	return stored, nil
}

func (f *fakeEventRepository) UpsertCorrection(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := eventKey(event.EmployeeID, event.Date)
	if stored, ok := f.events[key]; ok {
		stored.CheckIn = event.CheckIn
		stored.CheckOut = event.CheckOut
		stored.SubmissionKind = event.SubmissionKind
		stored.OverrideTag = event.OverrideTag
		stored.Note = event.Note
		if stored.CheckIn != nil && stored.CheckOut != nil && !stored.CheckOut.After(*stored.CheckIn) {
			return attendance.AttendanceEvent{}, attendance.ErrCheckOutBeforeCheckIn
		}
		f.events[key] = stored
		return stored, nil
	}
	f.events[key] = event
	return event, nil
}

func (f *fakeEventRepository) ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceEvent, error) {
	return nil, nil
}

func (f *fakeEventRepository) ListForDate(ctx context.Context, date time.Time) ([]attendance.AttendanceEvent, error) {
	return nil, nil
}

// newTestService wires the service against in-memory fakes with one
// schedule whose shift started startOffset ago and ends endOffset from now.
func newTestService(t *testing.T, startOffset, endOffset time.Duration, worksites []config.Worksite) (attendance.RecorderService, *fakeEventRepository, schedule.WorkSchedule) {
	t.Helper()

	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sched := schedule.WorkSchedule{
		ID:           "sched-1",
		EmployeeID:   "emp-1",
		Date:         date,
		PlannedStart: now.Add(-startOffset),
		PlannedEnd:   now.Add(endOffset),
		ShiftLabel:   schedule.ShiftRegular,
	}

	schedules := &fakeScheduleProvider{byID: map[string]schedule.WorkSchedule{sched.ID: sched}}
	events := newFakeEventRepository()
	svc := NewRecorderService(schedules, events, status.NewResolver(15), worksites)
	return svc, events, sched
}

func TestCheckIn_WithinToleranceNotLate(t *testing.T) {
	svc, _, _ := newTestService(t, 5*time.Minute, 8*time.Hour, nil)

	resp, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})

	require.NoError(t, err)
	assert.NotNil(t, resp.CheckInTime)
	require.NotNil(t, resp.LateMinutes)
	assert.Equal(t, 0, *resp.LateMinutes)
	assert.Equal(t, string(attendance.SubmissionNormal), resp.SubmissionKind)
}

func TestCheckIn_PastToleranceReportsLateMinutes(t *testing.T) {
	// shift started an hour ago; with the 15 minute tolerance the
	// threshold was 45 minutes ago
	svc, _, _ := newTestService(t, 60*time.Minute, 8*time.Hour, nil)

	resp, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})

	require.NoError(t, err)
	require.NotNil(t, resp.LateMinutes)
	assert.GreaterOrEqual(t, *resp.LateMinutes, 45)
}

func TestCheckIn_ScheduleNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	_, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "missing"})

	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestCheckIn_ForeignScheduleRejected(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	_, err := svc.CheckIn(context.Background(), "emp-2", attendance.CheckInRequest{ScheduleID: "sched-1"})

	assert.ErrorIs(t, err, attendance.ErrScheduleMismatch)
}

func TestCheckIn_SecondAttemptConflicts(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	_, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_ConcurrentWritersExactlyOneWins(t *testing.T) {
	svc, events, sched := newTestService(t, 0, 8*time.Hour, nil)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, wins)

	stored, err := events.GetByEmployeeAndDate(context.Background(), "emp-1", sched.Date)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotNil(t, stored.CheckIn)
}

func TestCheckIn_LabelsNearestWorksite(t *testing.T) {
	sites := []config.Worksite{
		{Name: "plant-a", Latitude: -6.2146, Longitude: 106.8451, RadiusMeters: 250},
		{Name: "warehouse", Latitude: -6.9000, Longitude: 107.6000, RadiusMeters: 150},
	}
	svc, events, sched := newTestService(t, 0, 8*time.Hour, sites)

	lat, lon := -6.2147, 106.8452
	resp, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{
		ScheduleID: "sched-1",
		Latitude:   &lat,
		Longitude:  &lon,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.LocationTag)
	assert.Equal(t, "plant-a", *resp.LocationTag)

	stored, err := events.GetByEmployeeAndDate(context.Background(), "emp-1", sched.Date)
	require.NoError(t, err)
	require.NotNil(t, stored.LocationTag)
	assert.Equal(t, "plant-a", *stored.LocationTag)
}

func TestCheckIn_FarFromAllWorksitesLeavesTagEmpty(t *testing.T) {
	sites := []config.Worksite{
		{Name: "plant-a", Latitude: -6.2146, Longitude: 106.8451, RadiusMeters: 250},
	}
	svc, _, _ := newTestService(t, 0, 8*time.Hour, sites)

	lat, lon := 35.6762, 139.6503
	resp, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{
		ScheduleID: "sched-1",
		Latitude:   &lat,
		Longitude:  &lon,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.LocationTag)
}

func TestCheckOut_WithoutCheckInFailsPrecondition(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	_, err := svc.CheckOut(context.Background(), "emp-1", attendance.CheckOutRequest{ScheduleID: "sched-1"})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_ReportsEarlyMinutes(t *testing.T) {
	// shift ends two hours from now, so checking out now is early
	svc, _, _ := newTestService(t, 30*time.Minute, 2*time.Hour, nil)

	_, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})
	require.NoError(t, err)

	resp, err := svc.CheckOut(context.Background(), "emp-1", attendance.CheckOutRequest{ScheduleID: "sched-1"})
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckOutTime)
	require.NotNil(t, resp.EarlyMinutes)
	assert.GreaterOrEqual(t, *resp.EarlyMinutes, 115)
}

func TestCheckOut_SecondAttemptConflicts(t *testing.T) {
	svc, _, _ := newTestService(t, 30*time.Minute, 2*time.Hour, nil)

	_, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{ScheduleID: "sched-1"})
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), "emp-1", attendance.CheckOutRequest{ScheduleID: "sched-1"})
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), "emp-1", attendance.CheckOutRequest{ScheduleID: "sched-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCorrect_CreatesManualCorrectionWithOverrideTag(t *testing.T) {
	svc, events, _ := newTestService(t, 0, 8*time.Hour, nil)

	in := "2026-03-02 08:05:00"
	out := "2026-03-02 17:00:00"
	resp, err := svc.Correct(context.Background(), attendance.CorrectionRequest{
		EmployeeID:   "emp-1",
		Date:         "2026-03-02",
		Tag:          string(attendance.TagPresent),
		CheckInTime:  &in,
		CheckOutTime: &out,
		Note:         "recorder outage, verified by shift lead",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.SubmissionManualCorrection), resp.SubmissionKind)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	stored, err := events.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.OverrideTag)
	assert.Equal(t, attendance.TagPresent, *stored.OverrideTag)
}

func TestCorrect_RejectsNonMonotonicTimes(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	in := "2026-03-02 17:00:00"
	out := "2026-03-02 08:05:00"
	_, err := svc.Correct(context.Background(), attendance.CorrectionRequest{
		EmployeeID:   "emp-1",
		Date:         "2026-03-02",
		Tag:          string(attendance.TagPresent),
		CheckInTime:  &in,
		CheckOutTime: &out,
		Note:         "bad correction",
	})

	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestCorrect_RejectsUnknownTag(t *testing.T) {
	svc, _, _ := newTestService(t, 0, 8*time.Hour, nil)

	_, err := svc.Correct(context.Background(), attendance.CorrectionRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		Tag:        "vacationing",
		Note:       "typo in tag",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}
