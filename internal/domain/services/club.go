package services

import (
	"context"

	"wellread/internal/domain/models"
)

// CreateClubRequest represents a request to create a club
type CreateClubRequest struct {
	UserID        string  `json:"-"`
	Name          string  `json:"name"`
	CurrentBookID *string `json:"current_book_id,omitempty"`
}

// UpdateClubRequest represents a partial update to a club. Nil fields are
// left unchanged.
type UpdateClubRequest struct {
	Name          *string `json:"name,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	CurrentBookID *string `json:"current_book_id,omitempty"`
}

// ClubService defines business logic operations for clubs
type ClubService interface {
	// CreateClub creates a club; the creator becomes admin and sole member
	CreateClub(ctx context.Context, req *CreateClubRequest) (*models.Club, error)

	// GetClub retrieves a club the user is a member of
	GetClub(ctx context.Context, clubID, userID string) (*models.Club, error)

	// ListClubs retrieves the user's clubs
	ListClubs(ctx context.Context, userID string, activeOnly bool) ([]models.Club, error)

	// UpdateClub updates club metadata; admin only
	UpdateClub(ctx context.Context, clubID, userID string, req *UpdateClubRequest) (*models.Club, error)

	// JoinClub adds the user to an existing club
	JoinClub(ctx context.Context, clubID, userID string) (*models.Club, error)

	// LeaveClub removes the user from a club; the admin cannot leave
	LeaveClub(ctx context.Context, clubID, userID string) error

	// AddBook puts a book on the club's reading list; any member may do this
	AddBook(ctx context.Context, clubID, bookID, userID string) error

	// RemoveBook takes a book off the reading list; admin only
	RemoveBook(ctx context.Context, clubID, bookID, userID string) error

	// ListBooks retrieves the club's reading list for a member
	ListBooks(ctx context.Context, clubID, userID string) ([]models.Book, error)

	// DeleteClub deletes a club; admin only
	DeleteClub(ctx context.Context, clubID, userID string) error
}
