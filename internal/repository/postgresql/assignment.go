package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/assignment"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// IsAssigned implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) IsAssigned(ctx context.Context, employeeID, clientID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_clients
			WHERE employee_id = $1 AND client_id = $2
		)
	`

	var assigned bool
	if err := r.db.QueryRow(ctx, query, employeeID, clientID).Scan(&assigned); err != nil {
		return false, fmt.Errorf("failed to check client assignment: %w", err)
	}

	return assigned, nil
}
