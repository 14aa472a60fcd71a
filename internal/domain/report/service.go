package report

import "context"

// ReportService is the read side: every method recomputes derived status
// through the resolver, never from stored hints. Reads are lock-free and
// safe to run concurrently with recorder writes.
type ReportService interface {
	// GetDailyStatus resolves one employee's canonical status for one day.
	// A missing schedule degrades to the unknown tag, not an error.
	GetDailyStatus(ctx context.Context, employeeID string, date string) (DailyStatusResponse, error)

	// GetRangeSummary aggregates one employee's range with three bulk
	// queries. Zero scheduled days yields a zero-filled summary.
	GetRangeSummary(ctx context.Context, req RangeSummaryRequest) (AggregateSummary, error)

	// GetOrgDailyBreakdown resolves every scheduled employee for one day,
	// optionally filtered by department.
	GetOrgDailyBreakdown(ctx context.Context, date string, department *string) ([]EmployeeDailyStatus, error)
}
