package repositories

import (
	"context"

	"wellread/internal/domain/models"
)

// ClubRepository defines data access operations for clubs and their
// membership and book associations.
type ClubRepository interface {
	// Create creates a new club and fills in the generated ID and timestamps
	Create(ctx context.Context, club *models.Club) error

	// GetByID retrieves a club by ID regardless of the caller's membership
	GetByID(ctx context.Context, id string) (*models.Club, error)

	// GetForMember retrieves a club only if userID is a member.
	// Returns ErrNotFound both when the club is absent and when the user is
	// not a member; callers must not be able to tell these apart.
	GetForMember(ctx context.Context, clubID, userID string) (*models.Club, error)

	// ListForMember retrieves the clubs userID belongs to, newest first.
	// When activeOnly is set, inactive clubs are filtered out.
	ListForMember(ctx context.Context, userID string, activeOnly bool) ([]models.Club, error)

	// Update updates a club's mutable fields (name, is_active, current_book)
	Update(ctx context.Context, club *models.Club) error

	// Delete deletes a club and its membership rows
	Delete(ctx context.Context, id string) error

	// AddMember adds userID to the club. Adding an existing member is a no-op.
	AddMember(ctx context.Context, clubID, userID string) error

	// RemoveMember removes userID from the club
	RemoveMember(ctx context.Context, clubID, userID string) error

	// AddBook attaches a book to the club's reading list
	AddBook(ctx context.Context, clubID, bookID string) error

	// RemoveBook detaches a book from the club's reading list
	RemoveBook(ctx context.Context, clubID, bookID string) error
}
