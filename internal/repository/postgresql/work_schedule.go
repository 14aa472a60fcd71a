package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/schedule"
	"github.com/arventa/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// workScheduleRepository adapts the planning subsystem's schedule table.
// Read-only except for the cached status hint column.
type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.Provider {
	return &workScheduleRepository{db: db}
}

// GetByID implements schedule.Provider.
func (r *workScheduleRepository) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, planned_start, planned_end,
			   shift_label, cached_status_tag, created_at, updated_at
		FROM work_schedules
		WHERE id = $1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.EmployeeID, &ws.Date, &ws.PlannedStart, &ws.PlannedEnd,
		&ws.ShiftLabel, &ws.CachedStatusTag, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule by ID: %w", err)
	}

	return ws, nil
}

// GetByEmployeeAndDate implements schedule.Provider.
func (r *workScheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, planned_start, planned_end,
			   shift_label, cached_status_tag, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&ws.ID, &ws.EmployeeID, &ws.Date, &ws.PlannedStart, &ws.PlannedEnd,
		&ws.ShiftLabel, &ws.CachedStatusTag, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule by employee and date: %w", err)
	}

	return ws, nil
}

// ListForRange implements schedule.Provider.
func (r *workScheduleRepository) ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, planned_start, planned_end,
			   shift_label, cached_status_tag, created_at, updated_at
		FROM work_schedules
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		var ws schedule.WorkSchedule
		err := rows.Scan(
			&ws.ID, &ws.EmployeeID, &ws.Date, &ws.PlannedStart, &ws.PlannedEnd,
			&ws.ShiftLabel, &ws.CachedStatusTag, &ws.CreatedAt, &ws.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}

	return schedules, rows.Err()
}

// ListForDate implements schedule.Provider.
func (r *workScheduleRepository) ListForDate(ctx context.Context, date time.Time, department *string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.date = $1"
	args := []interface{}{date}
	if department != nil && *department != "" {
		baseWhere += " AND e.department = $2"
		args = append(args, *department)
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.date, s.planned_start, s.planned_end,
			   s.shift_label, s.cached_status_tag, s.created_at, s.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM work_schedules s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY e.department, e.full_name
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		var ws schedule.WorkSchedule
		err := rows.Scan(
			&ws.ID, &ws.EmployeeID, &ws.Date, &ws.PlannedStart, &ws.PlannedEnd,
			&ws.ShiftLabel, &ws.CachedStatusTag, &ws.CreatedAt, &ws.UpdatedAt,
			&ws.EmployeeName, &ws.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}

	return schedules, rows.Err()
}

// UpdateCachedStatus implements schedule.Provider.
func (r *workScheduleRepository) UpdateCachedStatus(ctx context.Context, scheduleID string, tag string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedules
		SET cached_status_tag = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	ct, err := q.Exec(ctx, query, tag, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to update cached status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}
