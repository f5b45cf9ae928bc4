package checkin

import (
	"time"
)

type Status string

const (
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
)

// Checkin is one visit to a client site. checkin_time and
// distance_from_client are fixed at creation; checkout_time is set exactly
// once on checkout. Rows are never deleted by this core.
type Checkin struct {
	ID                 string
	EmployeeID         string
	ClientID           string
	CheckinTime        time.Time
	CheckoutTime       *time.Time
	DistanceFromClient float64 // km, rounded to 2 decimals at creation
	Status             Status
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined
	EmployeeName *string
	ClientName   *string
}

// HoursWorked returns the visit duration in hours, 0 while still open.
func (c *Checkin) HoursWorked() float64 {
	if c.CheckoutTime == nil {
		return 0
	}
	return c.CheckoutTime.Sub(c.CheckinTime).Hours()
}
