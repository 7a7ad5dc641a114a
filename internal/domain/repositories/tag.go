package repositories

import (
	"context"

	"wellread/internal/domain/models"
)

// TagRepository defines data access operations for tags and club tags.
// Both are scoped to a club; name uniqueness is enforced across the two
// kinds within a club.
type TagRepository interface {
	// CreateTag creates a new tag and fills in the generated ID and timestamps
	CreateTag(ctx context.Context, tag *models.Tag) error

	// GetTagByID retrieves a tag by ID
	GetTagByID(ctx context.Context, id string) (*models.Tag, error)

	// ListTagsForClub retrieves a club's tags, excluding archived ones
	// unless includeArchived is set
	ListTagsForClub(ctx context.Context, clubID string, includeArchived bool) ([]models.Tag, error)

	// UpdateTag updates a tag's mutable fields (name, archived)
	UpdateTag(ctx context.Context, tag *models.Tag) error

	// DeleteTag deletes a tag
	DeleteTag(ctx context.Context, id string) error

	// CreateClubTag creates a new club tag and fills in the generated ID and
	// timestamps
	CreateClubTag(ctx context.Context, clubTag *models.ClubTag) error

	// GetClubTagByID retrieves a club tag by ID
	GetClubTagByID(ctx context.Context, id string) (*models.ClubTag, error)

	// ListClubTagsForClub retrieves a club's club tags, optionally narrowed
	// to one book, excluding archived ones unless includeArchived is set
	ListClubTagsForClub(ctx context.Context, clubID, bookID string, includeArchived bool) ([]models.ClubTag, error)

	// UpdateClubTag updates a club tag's mutable fields (name, archived)
	UpdateClubTag(ctx context.Context, clubTag *models.ClubTag) error

	// DeleteClubTag deletes a club tag
	DeleteClubTag(ctx context.Context, id string) error

	// NameInUse reports whether a non-archived tag or club tag with the
	// exact name already exists in the club
	NameInUse(ctx context.Context, clubID, name string) (bool, error)
}
