package employee

import (
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/user"
)

type Employee struct {
	ID        string
	FullName  string
	Email     string
	Role      user.Role
	ManagerID *string // back-reference only, nil for managers themselves
	CreatedAt time.Time
	UpdatedAt time.Time
}
