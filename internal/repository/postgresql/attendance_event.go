package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/attendance"
	"github.com/arventa/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

const eventColumns = `
	id, employee_id, date, schedule_id,
	check_in, check_out, location_tag,
	check_in_latitude, check_in_longitude,
	check_out_latitude, check_out_longitude,
	submission_kind, override_tag, note,
	created_at, updated_at
`

func scanEvent(row pgx.Row) (attendance.AttendanceEvent, error) {
	var evt attendance.AttendanceEvent
	err := row.Scan(
		&evt.ID, &evt.EmployeeID, &evt.Date, &evt.ScheduleID,
		&evt.CheckIn, &evt.CheckOut, &evt.LocationTag,
		&evt.CheckInLatitude, &evt.CheckInLongitude,
		&evt.CheckOutLatitude, &evt.CheckOutLongitude,
		&evt.SubmissionKind, &evt.OverrideTag, &evt.Note,
		&evt.CreatedAt, &evt.UpdatedAt,
	)
	return evt, err
}

// isUniqueViolation reports a 23505 on the (employee_id, date) key, the
// arbiter between two concurrent check-ins for the same day.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements attendance.EventRepository.
func (r *attendanceEventRepository) Create(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, date, schedule_id,
			check_in, location_tag,
			check_in_latitude, check_in_longitude,
			submission_kind, override_tag, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Date,
		event.ScheduleID,
		event.CheckIn,
		event.LocationTag,
		event.CheckInLatitude,
		event.CheckInLongitude,
		event.SubmissionKind,
		event.OverrideTag,
		event.Note,
	).Scan(&event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceEvent{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// GetByEmployeeAndDate implements attendance.EventRepository.
func (r *attendanceEventRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	evt, err := scanEvent(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no event recorded yet
		}
		return nil, fmt.Errorf("failed to get attendance event by employee and date: %w", err)
	}

	return &evt, nil
}

// SetCheckIn implements attendance.EventRepository. Conditional write:
// only fills a row whose check_in is still NULL, so a racing writer
// observes zero affected rows and fails with Conflict.
func (r *attendanceEventRepository) SetCheckIn(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET check_in = $1,
			schedule_id = $2,
			location_tag = $3,
			check_in_latitude = $4,
			check_in_longitude = $5,
			note = COALESCE($6, note),
			updated_at = NOW()
		WHERE id = $7
		  AND check_in IS NULL
		RETURNING ` + eventColumns + `
	`

	evt, err := scanEvent(q.QueryRow(ctx, query,
		event.CheckIn,
		event.ScheduleID,
		event.LocationTag,
		event.CheckInLatitude,
		event.CheckInLongitude,
		event.Note,
		event.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceEvent{}, fmt.Errorf("failed to set check-in: %w", err)
	}

	return evt, nil
}

// SetCheckOut implements attendance.EventRepository.
func (r *attendanceEventRepository) SetCheckOut(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET check_out = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			updated_at = NOW()
		WHERE id = $4
		  AND check_out IS NULL
		RETURNING ` + eventColumns + `
	`

	evt, err := scanEvent(q.QueryRow(ctx, query,
		event.CheckOut,
		event.CheckOutLatitude,
		event.CheckOutLongitude,
		event.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceEvent{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceEvent{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	return evt, nil
}

// UpsertCorrection implements attendance.EventRepository. Runs inside one
// short transaction: the existing row, if any, is locked and merged so a
// correction that only touches one timestamp keeps the other recorded
// fact, then the monotonicity invariant is checked against the merged
// values before writing.
func (r *attendanceEventRepository) UpsertCorrection(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	var result attendance.AttendanceEvent

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		lockQuery := `
			SELECT ` + eventColumns + `
			FROM attendance_events
			WHERE employee_id = $1
			  AND date = $2
			FOR UPDATE
		`

		existing, err := scanEvent(tx.QueryRow(ctx, lockQuery, event.EmployeeID, event.Date))
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to lock attendance event: %w", err)
		}

		if err == nil {
			// merge: correction values win, untouched facts survive
			if event.CheckIn == nil {
				event.CheckIn = existing.CheckIn
			}
			if event.CheckOut == nil {
				event.CheckOut = existing.CheckOut
			}
			event.ID = existing.ID
			event.ScheduleID = existing.ScheduleID
			event.LocationTag = existing.LocationTag
			event.CheckInLatitude = existing.CheckInLatitude
			event.CheckInLongitude = existing.CheckInLongitude
			event.CheckOutLatitude = existing.CheckOutLatitude
			event.CheckOutLongitude = existing.CheckOutLongitude
		}

		if event.CheckIn != nil && event.CheckOut != nil && !event.CheckOut.After(*event.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		upsertQuery := `
			INSERT INTO attendance_events (
				id, employee_id, date, schedule_id,
				check_in, check_out, location_tag,
				check_in_latitude, check_in_longitude,
				check_out_latitude, check_out_longitude,
				submission_kind, override_tag, note
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
			)
			ON CONFLICT (employee_id, date) DO UPDATE SET
				check_in = EXCLUDED.check_in,
				check_out = EXCLUDED.check_out,
				submission_kind = EXCLUDED.submission_kind,
				override_tag = EXCLUDED.override_tag,
				note = EXCLUDED.note,
				updated_at = NOW()
			RETURNING ` + eventColumns + `
		`

		result, err = scanEvent(tx.QueryRow(ctx, upsertQuery,
			event.ID,
			event.EmployeeID,
			event.Date,
			event.ScheduleID,
			event.CheckIn,
			event.CheckOut,
			event.LocationTag,
			event.CheckInLatitude,
			event.CheckInLongitude,
			event.CheckOutLatitude,
			event.CheckOutLongitude,
			event.SubmissionKind,
			event.OverrideTag,
			event.Note,
		))
		if err != nil {
			return fmt.Errorf("failed to upsert correction: %w", err)
		}

		return nil
	})
	if err != nil {
		return attendance.AttendanceEvent{}, err
	}

	return result, nil
}

// ListForRange implements attendance.EventRepository.
func (r *attendanceEventRepository) ListForRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListForDate implements attendance.EventRepository.
func (r *attendanceEventRepository) ListForDate(ctx context.Context, date time.Time) ([]attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE date = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]attendance.AttendanceEvent, error) {
	var events []attendance.AttendanceEvent
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}
