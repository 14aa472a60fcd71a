package exception

import (
	"context"
	"time"
)

// Registry supplies approved exception requests. Backed by the approval
// workflow's tables; this service never writes them. An empty result is
// the normal case, not an error.
type Registry interface {
	// ListApproved retrieves every approved request for an employee whose
	// date range overlaps [start, end].
	ListApproved(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	// ListApprovedForDate retrieves every employee's approved requests
	// covering one calendar day.
	ListApprovedForDate(ctx context.Context, date time.Time) ([]Request, error)
}
