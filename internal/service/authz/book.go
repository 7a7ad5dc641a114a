package authz

import (
	"context"
	"fmt"

	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// BookAuthorizer decides book capabilities. Books carry no owner of their
// own; mutation rights derive from the admin of the controlling club.
type BookAuthorizer struct {
	bookRepo repositories.BookRepository
	clubs    *ClubAuthorizer
}

// NewBookAuthorizer creates a new book authorizer
func NewBookAuthorizer(bookRepo repositories.BookRepository, clubs *ClubAuthorizer) *BookAuthorizer {
	return &BookAuthorizer{
		bookRepo: bookRepo,
		clubs:    clubs,
	}
}

// Read fetches a book by ID
func (a *BookAuthorizer) Read(ctx context.Context, bookID string) (*models.Book, error) {
	book, err := a.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("read book: %w", err)
	}
	return book, nil
}

// IsClubAdmin checks that the book exists and the caller is the admin of
// the given club. Governs removing a book from a club's reading list.
func (a *BookAuthorizer) IsClubAdmin(ctx context.Context, userID, clubID, bookID string) (*models.Book, error) {
	book, err := a.Read(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := a.clubs.IsAdmin(ctx, userID, clubID); err != nil {
		return nil, err
	}
	return book, nil
}
