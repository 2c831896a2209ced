package repositories

import (
	"context"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a user, or updates name/email/roles on conflict.
	SaveUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
