package assignment

import "context"

// AssignmentRepository answers the capability question "may this employee
// check in at this client site". Assignment management itself lives outside
// the check-in core.
type AssignmentRepository interface {
	IsAssigned(ctx context.Context, employeeID, clientID string) (bool, error)
}
