package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
	"wellread/internal/domain/services"
	"wellread/internal/googlebooks"
	"wellread/internal/service/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// bookService implements the BookService interface
type bookService struct {
	bookRepo  repositories.BookRepository
	userRepo  repositories.UserRepository
	bookAuth  *authz.BookAuthorizer
	books     *googlebooks.Client
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewBookService creates a new book service
func NewBookService(
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	bookAuth *authz.BookAuthorizer,
	books *googlebooks.Client,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.BookService {
	return &bookService{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		bookAuth:  bookAuth,
		books:     books,
		txManager: txManager,
		logger:    logger,
	}
}

// Search queries the Google Books API
func (s *bookService) Search(ctx context.Context, query string) ([]googlebooks.Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", domain.ErrValidation)
	}
	return s.books.Search(ctx, query)
}

// GetBook retrieves a book by ID
func (s *bookService) GetBook(ctx context.Context, bookID string) (*models.Book, error) {
	return s.bookAuth.Read(ctx, bookID)
}

// AddToShelf gets or creates the catalog record for a Google Books volume
// and attaches it to the caller's shelf. Title and author are resolved from
// the API when the request omits them. A concurrent create of the same
// volume is absorbed by re-reading the winner's row.
func (s *bookService) AddToShelf(ctx context.Context, req *services.AddBookRequest) (*models.Book, error) {
	if err := s.validateAddRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := strings.TrimSpace(req.Title)
	authorName := strings.TrimSpace(req.AuthorName)
	if title == "" {
		volume, err := s.books.GetVolume(ctx, req.GoogleBooksID)
		if err != nil {
			return nil, fmt.Errorf("resolve volume %s: %w", req.GoogleBooksID, err)
		}
		title = volume.VolumeInfo.Title
		if len(volume.VolumeInfo.Authors) > 0 {
			authorName = volume.VolumeInfo.Authors[0]
		}
	}

	var book *models.Book
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		book, err = s.bookRepo.GetByGoogleBooksID(txCtx, req.GoogleBooksID)
		if errors.Is(err, domain.ErrNotFound) {
			book = &models.Book{
				GoogleBooksID: req.GoogleBooksID,
				Title:         title,
				AuthorName:    authorName,
			}
			err = s.bookRepo.Create(txCtx, book)

			var conflict *domain.ConflictError
			if errors.As(err, &conflict) && conflict.ResourceID != "" {
				book, err = s.bookRepo.GetByID(txCtx, conflict.ResourceID)
			}
		}
		if err != nil {
			return err
		}

		return s.userRepo.AddBook(txCtx, req.UserID, book.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("book added to shelf",
		"id", book.ID,
		"google_books_id", book.GoogleBooksID,
		"user_id", req.UserID,
	)

	return book, nil
}

// RemoveFromShelf detaches a book from the caller's shelf
func (s *bookService) RemoveFromShelf(ctx context.Context, userID, bookID string) error {
	if _, err := s.bookAuth.Read(ctx, bookID); err != nil {
		return err
	}
	if err := s.userRepo.RemoveBook(ctx, userID, bookID); err != nil {
		return err
	}

	s.logger.Info("book removed from shelf", "id", bookID, "user_id", userID)

	return nil
}

// validateAddRequest validates an add book request
func (s *bookService) validateAddRequest(req *services.AddBookRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.GoogleBooksID, validation.Required),
	)
}
