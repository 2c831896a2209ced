package services

import (
	"context"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
)

// UserSvcFacade defines account management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// CreateOAuthUser provisions an account from a verified external
	// identity. Existing accounts matched by email are returned as-is.
	CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}
