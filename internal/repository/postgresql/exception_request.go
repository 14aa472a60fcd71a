package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/exception"
	"github.com/arventa/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// exceptionRequestRepository adapts the approval workflow's request
// table. Only approved rows ever leave this adapter.
type exceptionRequestRepository struct {
	db *database.DB
}

func NewExceptionRequestRepository(db *database.DB) exception.Registry {
	return &exceptionRequestRepository{db: db}
}

// ListApproved implements exception.Registry.
func (r *exceptionRequestRepository) ListApproved(ctx context.Context, employeeID string, start, end time.Time) ([]exception.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, kind, status,
			   duration_minutes, created_at, updated_at
		FROM exception_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query exception requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ListApprovedForDate implements exception.Registry.
func (r *exceptionRequestRepository) ListApprovedForDate(ctx context.Context, date time.Time) ([]exception.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, kind, status,
			   duration_minutes, created_at, updated_at
		FROM exception_requests
		WHERE status = 'approved'
		  AND start_date <= $1
		  AND end_date >= $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query exception requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]exception.Request, error) {
	var requests []exception.Request
	for rows.Next() {
		var req exception.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate,
			&req.Kind, &req.Status, &req.DurationMinutes,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
