package schedule

import (
	"context"
	"time"
)

// Provider supplies planned shifts. The rows are owned by the
// schedule-planning subsystem; this service reads them and maintains
// only the non-authoritative cached status column.
type Provider interface {
	// GetByID retrieves a schedule row by its primary key.
	GetByID(ctx context.Context, id string) (WorkSchedule, error)

	// GetByEmployeeAndDate retrieves the planned shift for one employee
	// on one calendar day. Returns ErrScheduleNotFound when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (WorkSchedule, error)

	// ListForRange retrieves all planned shifts for an employee between
	// start and end inclusive, ordered by date.
	ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]WorkSchedule, error)

	// ListForDate retrieves every employee's planned shift for one day,
	// optionally filtered by department. Rows carry employee name and
	// department for reporting.
	ListForDate(ctx context.Context, date time.Time, department *string) ([]WorkSchedule, error)

	// UpdateCachedStatus writes the derived-status hint for a schedule
	// row. Cache only; readers must never trust it.
	UpdateCachedStatus(ctx context.Context, scheduleID string, tag string) error
}
