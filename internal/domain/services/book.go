package services

import (
	"context"

	"wellread/internal/domain/models"
	"wellread/internal/googlebooks"
)

// AddBookRequest represents a request to add a book to the caller's shelf
// from a Google Books volume
type AddBookRequest struct {
	UserID        string `json:"-"`
	GoogleBooksID string `json:"google_books_id"`
	Title         string `json:"title"`
	AuthorName    string `json:"author_name"`
}

// BookService defines business logic operations for the book catalog
type BookService interface {
	// Search queries the Google Books API
	Search(ctx context.Context, query string) ([]googlebooks.Volume, error)

	// GetBook retrieves a book by ID
	GetBook(ctx context.Context, bookID string) (*models.Book, error)

	// AddToShelf gets or creates the catalog record for a volume and
	// attaches it to the caller's shelf
	AddToShelf(ctx context.Context, req *AddBookRequest) (*models.Book, error)

	// RemoveFromShelf detaches a book from the caller's shelf
	RemoveFromShelf(ctx context.Context, userID, bookID string) error
}
