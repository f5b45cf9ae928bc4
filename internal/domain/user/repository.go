package user

import "context"

type UserRepository interface {
	// GetByEmail retrieves a user with the employee role joined in.
	GetByEmail(ctx context.Context, email string) (User, error)
}
