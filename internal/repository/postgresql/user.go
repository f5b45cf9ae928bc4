package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/user"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	query := `
		SELECT u.id, u.employee_id, u.email, u.password_hash,
			   u.created_at, u.updated_at,
			   e.role
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE u.email = $1
	`

	var usr user.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&usr.ID, &usr.EmployeeID, &usr.Email, &usr.PasswordHash,
		&usr.CreatedAt, &usr.UpdatedAt,
		&usr.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return usr, nil
}
