package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/domain/exception"
	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/service/status"
)

// StatusCacheJobs refreshes the cached status hint stored on schedule
// rows. The cache exists so dashboards can render without a resolver
// round-trip; it is recomputed wholesale and never read as truth, so a
// late-approved exception is at worst stale in the hint column until the
// next run.
type StatusCacheJobs struct {
	schedules  schedule.Provider
	events     attendance.EventRepository
	exceptions exception.Registry
	resolver   *status.Resolver
}

func NewStatusCacheJobs(
	schedules schedule.Provider,
	events attendance.EventRepository,
	exceptions exception.Registry,
	resolver *status.Resolver,
) *StatusCacheJobs {
	return &StatusCacheJobs{
		schedules:  schedules,
		events:     events,
		exceptions: exceptions,
		resolver:   resolver,
	}
}

func (j *StatusCacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("refresh_cached_status", 1, j.RefreshYesterday)
}

// RefreshYesterday recomputes every employee's derived tag for the
// previous calendar day and writes it to the cache column.
func (j *StatusCacheJobs) RefreshYesterday(ctx context.Context) error {
	day := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	return j.RefreshDate(ctx, day)
}

// RefreshDate recomputes the cache for one calendar day. One bad row
// is logged and skipped, never aborting the batch.
func (j *StatusCacheJobs) RefreshDate(ctx context.Context, day time.Time) error {
	schedules, err := j.schedules.ListForDate(ctx, day, nil)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	if len(schedules) == 0 {
		slog.Info("Cron: no schedules to refresh", "date", day.Format("2006-01-02"))
		return nil
	}

	events, err := j.events.ListForDate(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list attendance events: %w", err)
	}

	exceptions, err := j.exceptions.ListApprovedForDate(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list approved exceptions: %w", err)
	}

	eventsByEmployee := make(map[string]*attendance.AttendanceEvent, len(events))
	for i := range events {
		eventsByEmployee[events[i].EmployeeID] = &events[i]
	}

	exceptionsByEmployee := make(map[string][]exception.Request)
	for _, ex := range exceptions {
		exceptionsByEmployee[ex.EmployeeID] = append(exceptionsByEmployee[ex.EmployeeID], ex)
	}

	refreshed := 0
	for i := range schedules {
		sched := &schedules[i]
		st := j.resolver.Resolve(sched, eventsByEmployee[sched.EmployeeID], exceptionsByEmployee[sched.EmployeeID])

		if err := j.schedules.UpdateCachedStatus(ctx, sched.ID, string(st.Tag)); err != nil {
			slog.Error("Cron: failed to refresh cached status",
				"schedule_id", sched.ID,
				"employee_id", sched.EmployeeID,
				"error", err)
			continue
		}
		refreshed++
	}

	slog.Info("Cron: cached status refreshed",
		"date", day.Format("2006-01-02"),
		"refreshed", refreshed,
		"total", len(schedules))

	return nil
}
