package repositories

import (
	"context"

	"wellread/internal/domain/models"
)

// BookRepository defines data access operations for the shared book catalog
type BookRepository interface {
	// Create creates a new book and fills in the generated ID and timestamps
	Create(ctx context.Context, book *models.Book) error

	// GetByID retrieves a book by ID
	GetByID(ctx context.Context, id string) (*models.Book, error)

	// GetByGoogleBooksID retrieves a book by its Google Books volume ID
	GetByGoogleBooksID(ctx context.Context, googleBooksID string) (*models.Book, error)

	// ListForClub retrieves the books on a club's reading list
	ListForClub(ctx context.Context, clubID string) ([]models.Book, error)
}
