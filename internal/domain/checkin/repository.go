package checkin

import (
	"context"
	"time"
)

// LedgerRepository is the durable store of checkin rows and the sole arbiter
// of the single-active-checkin invariant. Both write methods are atomic
// conditional operations: the check and the write happen in one indivisible
// statement against the store, never as an application-level read-then-write
// sequence.
type LedgerRepository interface {
	// TryOpenCheckin inserts row if the employee has no active checkin.
	// Returns ErrAlreadyCheckedIn when the store's uniqueness constraint
	// rejects the insert.
	TryOpenCheckin(ctx context.Context, row Checkin) (Checkin, error)

	// TryCloseCheckin sets checkout_time and flips status on the employee's
	// active checkin. A conditional update: zero affected rows means
	// ErrNoActiveCheckin, which also guards against concurrent double
	// checkout.
	TryCloseCheckin(ctx context.Context, employeeID string, checkoutTime time.Time) (Checkin, error)

	// GetActiveByEmployee returns the employee's open checkin, or
	// ErrNoActiveCheckin. Read-only, advisory: never used to enforce the
	// invariant.
	GetActiveByEmployee(ctx context.Context, employeeID string) (Checkin, error)

	// ListByEmployeeOnDate returns the employee's checkins whose
	// checkin_time falls on the given UTC calendar date, oldest first.
	ListByEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]Checkin, error)
}
