package authz

import (
	"context"
	"errors"
	"fmt"

	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// NoteAuthorizer decides note-scoped capabilities: read visibility,
// owner-only mutation, and parent scope validity at creation.
//
// Notes use Forbidden (not NotFound) for privacy and ownership violations:
// a note's existence is already visible club-wide through listings, so
// there is nothing to hide by collapsing the cases.
type NoteAuthorizer struct {
	noteRepo repositories.NoteRepository
	bookRepo repositories.BookRepository
	clubs    *ClubAuthorizer
}

// NewNoteAuthorizer creates a new note authorizer
func NewNoteAuthorizer(noteRepo repositories.NoteRepository, bookRepo repositories.BookRepository, clubs *ClubAuthorizer) *NoteAuthorizer {
	return &NoteAuthorizer{
		noteRepo: noteRepo,
		bookRepo: bookRepo,
		clubs:    clubs,
	}
}

// Read fetches a note for reading. Private notes are readable only by
// their author; everyone else gets ErrForbidden.
func (a *NoteAuthorizer) Read(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, err := a.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	if note.Private && note.UserID != userID {
		return nil, fmt.Errorf("note %s: user is not owner of private note: %w", noteID, domain.ErrForbidden)
	}
	return note, nil
}

// CanUpdate checks that userID authored the note. Privacy is irrelevant to
// mutation; only ownership gates it.
func (a *NoteAuthorizer) CanUpdate(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, err := a.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("check note owner: %w", err)
	}
	if note.UserID != userID {
		return nil, fmt.Errorf("note %s: user is not owner of note: %w", noteID, domain.ErrForbidden)
	}
	return note, nil
}

// CanDelete checks that userID authored the note
func (a *NoteAuthorizer) CanDelete(ctx context.Context, userID, noteID string) (*models.Note, error) {
	return a.CanUpdate(ctx, userID, noteID)
}

// ValidForCreation checks the note's parent scope: the caller must be a
// member of the club and the book must exist. Invalid references surface
// as ErrValidation, not ErrNotFound - the note itself does not exist yet.
func (a *NoteAuthorizer) ValidForCreation(ctx context.Context, userID, clubID, bookID string) error {
	if _, err := a.clubs.ReadAsMember(ctx, userID, clubID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("club %s does not exist: %w", clubID, domain.ErrValidation)
		}
		return err
	}

	if _, err := a.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("book %s does not exist: %w", bookID, domain.ErrValidation)
		}
		return fmt.Errorf("check book exists: %w", err)
	}
	return nil
}
