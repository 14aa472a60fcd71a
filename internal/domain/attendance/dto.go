package attendance

import (
	"time"

	"github.com/arventa/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// RECORDER DTOs
// ========================================

type CheckInRequest struct {
	ScheduleID string   `json:"schedule_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule_id is required",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	ScheduleID string   `json:"schedule_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule_id is required",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CorrectionRequest is the HR override. The explicit tag is authoritative
// for the corrected day; times are optional but must stay monotonic.
type CorrectionRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	Tag          string  `json:"tag"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Note         string  `json:"note"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !IsValidStatusTag(r.Tag) {
		errs = append(errs, validator.ValidationError{
			Field:   "tag",
			Message: "tag is not a recognized attendance status",
		})
	}

	if r.CheckInTime != nil && !validator.IsValidDateTime(*r.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check_in_time must be in YYYY-MM-DD HH:MM:SS format",
		})
	}

	if r.CheckOutTime != nil && !validator.IsValidDateTime(*r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must be in YYYY-MM-DD HH:MM:SS format",
		})
	}

	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required for manual corrections",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Times returns the parsed correction timestamps, in UTC.
func (r *CorrectionRequest) Times() (checkIn, checkOut *time.Time) {
	if r.CheckInTime != nil {
		if t, err := time.Parse("2006-01-02 15:04:05", *r.CheckInTime); err == nil {
			t = t.UTC()
			checkIn = &t
		}
	}
	if r.CheckOutTime != nil {
		if t, err := time.Parse("2006-01-02 15:04:05", *r.CheckOutTime); err == nil {
			t = t.UTC()
			checkOut = &t
		}
	}
	return checkIn, checkOut
}

type EventResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	ScheduleID     *string  `json:"schedule_id,omitempty"`
	CheckInTime    *string  `json:"check_in_time"`
	CheckOutTime   *string  `json:"check_out_time"`
	LocationTag    *string  `json:"location_tag,omitempty"`
	SubmissionKind string   `json:"submission_kind"`
	LateMinutes    *int     `json:"late_minutes,omitempty"`
	EarlyMinutes   *int     `json:"early_minutes,omitempty"`
	Note           *string  `json:"note,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}
