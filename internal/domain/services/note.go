package services

import (
	"context"

	"wellread/internal/domain/models"
)

// CreateNoteRequest represents a request to create a note
type CreateNoteRequest struct {
	UserID  string `json:"-"`
	ClubID  string `json:"club_id"`
	BookID  string `json:"book_id"`
	Content string `json:"content"`
	Private bool   `json:"private"`
}

// UpdateNoteRequest represents a partial update to a note. Nil fields are
// left unchanged.
type UpdateNoteRequest struct {
	Content  *string `json:"content,omitempty"`
	Private  *bool   `json:"private,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// NoteTagsRequest names tags and club tags to attach to or detach from a note
type NoteTagsRequest struct {
	Tags     []string `json:"tags"`
	ClubTags []string `json:"club_tags"`
}

// PersonalNotesQuery controls the personal note listing
type PersonalNotesQuery struct {
	ClubID          string
	IncludePrivate  bool
	IncludeArchived bool
}

// ClubNotesQuery controls the club-wide note listing
type ClubNotesQuery struct {
	ClubID          string
	IncludeArchived bool
}

// NoteService defines business logic operations for notes
type NoteService interface {
	// CreateNote creates a note after validating its club and book scope
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)

	// GetNote retrieves a single note, enforcing privacy
	GetNote(ctx context.Context, noteID, userID string) (*models.Note, error)

	// ListPersonalNotes retrieves the caller's own notes
	ListPersonalNotes(ctx context.Context, userID string, q PersonalNotesQuery) ([]models.Note, error)

	// ListClubNotes retrieves a club's notes for a member; private notes
	// never appear, including the caller's own
	ListClubNotes(ctx context.Context, userID string, q ClubNotesQuery) ([]models.Note, error)

	// UpdateNote updates a note; author only
	UpdateNote(ctx context.Context, noteID, userID string, req *UpdateNoteRequest) (*models.Note, error)

	// TagNote attaches tags and club tags to a note; author only
	TagNote(ctx context.Context, noteID, userID string, req *NoteTagsRequest) error

	// UntagNote detaches tags and club tags from a note; author only
	UntagNote(ctx context.Context, noteID, userID string, req *NoteTagsRequest) error

	// DeleteNote deletes a note; author only
	DeleteNote(ctx context.Context, noteID, userID string) error
}
