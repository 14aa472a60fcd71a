package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Writes are
// serialized per (employeeID, date) by the storage layer: Create and
// SetCheckIn fail with ErrAlreadyCheckedIn when another writer won the
// race, SetCheckOut with ErrAlreadyCheckedOut. Callers never retry by
// overwriting.
type EventRepository interface {
	// Create inserts a new event. The unique (employee_id, date) key
	// rejects duplicates; the loser receives ErrAlreadyCheckedIn.
	Create(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// GetByEmployeeAndDate retrieves the event for one employee on one
	// calendar day. Returns (nil, nil) when no event exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceEvent, error)

	// SetCheckIn fills the check-in fields of an existing event that has
	// none yet (a correction may have created the row first). Conditional
	// write; ErrAlreadyCheckedIn when check_in is already set.
	SetCheckIn(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// SetCheckOut fills the check-out fields. Conditional write;
	// ErrAlreadyCheckedOut when check_out is already set.
	SetCheckOut(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// UpsertCorrection inserts or replaces the event for the corrected
	// day inside one transaction, preserving recorded coordinates the
	// correction does not touch.
	UpsertCorrection(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// ListForRange retrieves all events for an employee between start and
	// end inclusive.
	ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceEvent, error)

	// ListForDate retrieves every employee's event for one calendar day.
	ListForDate(ctx context.Context, date time.Time) ([]AttendanceEvent, error)
}
