package services

import (
	"context"

	"wellread/internal/domain/models"
)

// RegisterUserRequest represents a signup request. The user ID is the
// authenticated subject from the identity provider.
type RegisterUserRequest struct {
	UserID   string `json:"-"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserService defines business logic operations for users
type UserService interface {
	// Register creates the profile row for an authenticated subject after
	// checking the email is not already registered
	Register(ctx context.Context, req *RegisterUserRequest) (*models.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// Follow makes followerID follow followingID; idempotent
	Follow(ctx context.Context, followerID, followingID string) (*models.UserFollow, error)

	// Unfollow removes the follow relation; a no-op if absent
	Unfollow(ctx context.Context, followerID, followingID string) (*models.UserFollow, error)

	// ListFollowing retrieves the users the caller follows
	ListFollowing(ctx context.Context, userID string) ([]models.UserFollow, error)
}
