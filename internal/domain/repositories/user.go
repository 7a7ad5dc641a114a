package repositories

import (
	"context"

	"wellread/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create creates a new user and fills in the generated ID and timestamps
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Follow records followerID following followingID.
	// A duplicate follow is a no-op.
	Follow(ctx context.Context, followerID, followingID string) error

	// Unfollow removes the follow relation if present.
	// Unfollowing a user that was never followed is a no-op.
	Unfollow(ctx context.Context, followerID, followingID string) error

	// ListFollowing retrieves the users that userID follows
	ListFollowing(ctx context.Context, userID string) ([]models.UserFollow, error)

	// AddBook attaches a book to the user's shelf
	AddBook(ctx context.Context, userID, bookID string) error

	// RemoveBook detaches a book from the user's shelf
	RemoveBook(ctx context.Context, userID, bookID string) error
}
