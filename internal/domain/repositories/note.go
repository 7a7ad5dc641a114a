package repositories

import (
	"context"

	"wellread/internal/domain/models"
)

// PersonalNoteFilter controls the personal note listing. Private and
// archived notes are excluded unless explicitly requested.
type PersonalNoteFilter struct {
	ClubID          string // optional, narrows to one club
	IncludePrivate  bool
	IncludeArchived bool
}

// ClubNoteFilter controls the club-wide note listing. Private notes are
// always excluded, including the caller's own.
type ClubNoteFilter struct {
	ClubID          string
	IncludeArchived bool
}

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create creates a new note and fills in the generated ID and timestamps
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note by ID regardless of privacy
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// ListPersonal retrieves userID's own notes subject to the filter
	ListPersonal(ctx context.Context, userID string, filter PersonalNoteFilter) ([]models.Note, error)

	// ListForClub retrieves a club's non-private notes subject to the filter
	ListForClub(ctx context.Context, filter ClubNoteFilter) ([]models.Note, error)

	// Update updates a note's mutable fields (content, private, archived)
	Update(ctx context.Context, note *models.Note) error

	// Delete deletes a note
	Delete(ctx context.Context, id string) error

	// AddTag associates a tag with the note
	AddTag(ctx context.Context, noteID, tagID string) error

	// RemoveTag removes a tag association from the note
	RemoveTag(ctx context.Context, noteID, tagID string) error

	// AddClubTag associates a club tag with the note
	AddClubTag(ctx context.Context, noteID, clubTagID string) error

	// RemoveClubTag removes a club tag association from the note
	RemoveClubTag(ctx context.Context, noteID, clubTagID string) error
}
