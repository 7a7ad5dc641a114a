package services

import (
	"context"

	"wellread/internal/domain/models"
)

// CreateTagRequest represents a request to create a club-scoped tag
type CreateTagRequest struct {
	UserID string `json:"-"`
	ClubID string `json:"club_id"`
	Name   string `json:"name"`
}

// CreateClubTagRequest represents a request to create a club tag pinned to
// a book
type CreateClubTagRequest struct {
	UserID string `json:"-"`
	ClubID string `json:"club_id"`
	BookID string `json:"book_id"`
	Name   string `json:"name"`
}

// UpdateTagRequest represents a partial update to a tag or club tag. Nil
// fields are left unchanged.
type UpdateTagRequest struct {
	Name     *string `json:"name,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// TagService defines business logic operations for tags and club tags
type TagService interface {
	// CreateTag creates a tag; any club member, name must be unique in club
	CreateTag(ctx context.Context, req *CreateTagRequest) (*models.Tag, error)

	// GetTag retrieves a tag for a member of its club
	GetTag(ctx context.Context, tagID, userID string) (*models.Tag, error)

	// ListTags retrieves a club's tags for a member
	ListTags(ctx context.Context, clubID, userID string, includeArchived bool) ([]models.Tag, error)

	// UpdateTag updates a tag; club admin only
	UpdateTag(ctx context.Context, tagID, userID string, req *UpdateTagRequest) (*models.Tag, error)

	// DeleteTag deletes a tag; club admin only
	DeleteTag(ctx context.Context, tagID, userID string) error

	// CreateClubTag creates a club tag; club admin only
	CreateClubTag(ctx context.Context, req *CreateClubTagRequest) (*models.ClubTag, error)

	// GetClubTag retrieves a club tag for a member of its club
	GetClubTag(ctx context.Context, clubTagID, userID string) (*models.ClubTag, error)

	// ListClubTags retrieves a club's club tags for a member, optionally
	// narrowed to one book
	ListClubTags(ctx context.Context, clubID, bookID, userID string, includeArchived bool) ([]models.ClubTag, error)

	// UpdateClubTag updates a club tag; club admin only
	UpdateClubTag(ctx context.Context, clubTagID, userID string, req *UpdateTagRequest) (*models.ClubTag, error)

	// DeleteClubTag deletes a club tag; club admin only
	DeleteClubTag(ctx context.Context, clubTagID, userID string) error
}
