package report

import (
	"github.com/arventa/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// QUERY DTOs
// ========================================

type RangeSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *RangeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsValidDate(r.StartDate) && validator.IsValidDate(r.EndDate) && r.EndDate < r.StartDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyStatusResponse struct {
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	Tag          string `json:"tag"`
	LateMinutes  int    `json:"late_minutes"`
	EarlyMinutes int    `json:"early_minutes"`
}

type DailyLateEntry struct {
	Date        string `json:"date"`
	LateMinutes int    `json:"late_minutes"`
}

// AggregateSummary is the payroll input for one employee over a range.
// The per-tag counts always sum to ScheduledDays.
type AggregateSummary struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	ScheduledDays      int `json:"scheduled_days"`
	PresentDays        int `json:"present_days"`
	LateDays           int `json:"late_days"`
	OnLeaveDays        int `json:"on_leave_days"`
	SickDays           int `json:"sick_days"`
	AnnualLeaveDays    int `json:"annual_leave_days"`
	AbsentNoPermitDays int `json:"absent_no_permit_days"`
	DayOffDays         int `json:"day_off_days"`
	UnknownDays        int `json:"unknown_days"`

	TotalLateMinutes int              `json:"total_late_minutes"`
	LateBreakdown    []DailyLateEntry `json:"late_breakdown"`

	OvertimeHours float64 `json:"overtime_hours"`
}

// EmployeeDailyStatus is one row of the organization-wide daily breakdown.
type EmployeeDailyStatus struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         string  `json:"date"`
	Tag          string  `json:"tag"`
	LateMinutes  int     `json:"late_minutes"`
	EarlyMinutes int     `json:"early_minutes"`
}
