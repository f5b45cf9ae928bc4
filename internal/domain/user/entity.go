package user

import "time"

// Role is a closed variant. Authorization decisions are made on this value
// once at the boundary, never inferred from other fields.
type Role string

const (
	RoleManager  Role = "manager"  // Leads a team, can pull daily reports
	RoleEmployee Role = "employee" // Field employee, checks in at client sites
)

// IsManager reports whether the role grants access to team-level reports.
func (r Role) IsManager() bool {
	return r == RoleManager
}

type User struct {
	ID           string
	EmployeeID   string
	Email        string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined from employees
	Role Role
}
