package authz

import (
	"context"
	"fmt"

	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// TagAuthorizer decides tag and club tag capabilities. Both kinds are
// club-scoped: reads require membership in the owning club (non-members get
// ErrNotFound, same no-leak policy as clubs), mutation requires the owning
// club's admin.
type TagAuthorizer struct {
	tagRepo repositories.TagRepository
	clubs   *ClubAuthorizer
}

// NewTagAuthorizer creates a new tag authorizer
func NewTagAuthorizer(tagRepo repositories.TagRepository, clubs *ClubAuthorizer) *TagAuthorizer {
	return &TagAuthorizer{
		tagRepo: tagRepo,
		clubs:   clubs,
	}
}

// Read fetches a tag if the caller is a member of its owning club
func (a *TagAuthorizer) Read(ctx context.Context, userID, tagID string) (*models.Tag, error) {
	tag, err := a.tagRepo.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}
	if _, err := a.clubs.ReadAsMember(ctx, userID, tag.ClubID); err != nil {
		return nil, err
	}
	return tag, nil
}

// IsAdmin checks that the caller is the admin of the tag's owning club.
// Governs tag update and delete.
func (a *TagAuthorizer) IsAdmin(ctx context.Context, userID, tagID string) (*models.Tag, error) {
	tag, err := a.tagRepo.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("check tag admin: %w", err)
	}
	if _, err := a.clubs.IsAdmin(ctx, userID, tag.ClubID); err != nil {
		return nil, err
	}
	return tag, nil
}

// CanCreate checks membership and tag name uniqueness for a new tag
func (a *TagAuthorizer) CanCreate(ctx context.Context, userID, clubID, name string) error {
	return a.clubs.NoDuplicateTagName(ctx, userID, clubID, name)
}

// ReadClubTag fetches a club tag if the caller is a member of its club
func (a *TagAuthorizer) ReadClubTag(ctx context.Context, userID, clubTagID string) (*models.ClubTag, error) {
	clubTag, err := a.tagRepo.GetClubTagByID(ctx, clubTagID)
	if err != nil {
		return nil, fmt.Errorf("read club tag: %w", err)
	}
	if _, err := a.clubs.ReadAsMember(ctx, userID, clubTag.ClubID); err != nil {
		return nil, err
	}
	return clubTag, nil
}

// ClubTagIsAdmin checks that the caller is the admin of the club tag's club.
// Club tags are admin-managed end to end.
func (a *TagAuthorizer) ClubTagIsAdmin(ctx context.Context, userID, clubTagID string) (*models.ClubTag, error) {
	clubTag, err := a.tagRepo.GetClubTagByID(ctx, clubTagID)
	if err != nil {
		return nil, fmt.Errorf("check club tag admin: %w", err)
	}
	if _, err := a.clubs.IsAdmin(ctx, userID, clubTag.ClubID); err != nil {
		return nil, err
	}
	return clubTag, nil
}
