package attendance

import "context"

// RecorderService is the transactional write path into the event store.
// The acting employee is always an explicit parameter supplied by the
// caller; the core never reads it from ambient session state.
type RecorderService interface {
	// CheckIn records the first check-in of the day. Conflict when an
	// event with a check-in already exists for (employeeID, day).
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (EventResponse, error)

	// CheckOut closes the day's event. FailedPrecondition without a prior
	// check-in, InvalidArgument when the timestamp is not after check-in.
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (EventResponse, error)

	// Correct upserts an event with explicit authoritative values,
	// tagged as a manual correction for auditability.
	Correct(ctx context.Context, req CorrectionRequest) (EventResponse, error)
}
