package checkin

import "context"

type CheckinService interface {
	// CheckIn opens a checkin at a client site. The employee must be
	// assigned to the client and must not have an active checkin. The
	// response carries the computed distance and a warning flag when the
	// reported position is more than 0.5 km from the client's registered
	// location.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the employee's active checkin.
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// GetActive returns the employee's open checkin, if any.
	GetActive(ctx context.Context, employeeID string) (CheckinResponse, error)

	// GetMyCheckins lists the employee's checkins for a UTC calendar date.
	GetMyCheckins(ctx context.Context, req MyCheckinsRequest) ([]CheckinResponse, error)
}
