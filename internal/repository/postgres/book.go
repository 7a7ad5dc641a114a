package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// PostgresBookRepository implements the BookRepository interface
type PostgresBookRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBookRepository creates a new book repository
func NewBookRepository(config *RepositoryConfig) repositories.BookRepository {
	return &PostgresBookRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new book
func (r *PostgresBookRepository) Create(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (google_books_id, title, author_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Books)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		book.GoogleBooksID,
		book.Title,
		book.AuthorName,
	).Scan(&book.ID, &book.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingBookID(ctx, book.GoogleBooksID)
			if queryErr != nil {
				return fmt.Errorf("book %q already exists: %w", book.GoogleBooksID, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("book %q already exists", book.GoogleBooksID),
				ResourceType: "book",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID
func (r *PostgresBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT id, google_books_id, title, author_name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Books)

	var book models.Book
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.GoogleBooksID,
		&book.Title,
		&book.AuthorName,
		&book.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// GetByGoogleBooksID retrieves a book by its Google Books volume ID
func (r *PostgresBookRepository) GetByGoogleBooksID(ctx context.Context, googleBooksID string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT id, google_books_id, title, author_name, created_at
		FROM %s
		WHERE google_books_id = $1
	`, r.tables.Books)

	var book models.Book
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, googleBooksID).Scan(
		&book.ID,
		&book.GoogleBooksID,
		&book.Title,
		&book.AuthorName,
		&book.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("book with volume %s: %w", googleBooksID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book by volume: %w", err)
	}

	return &book, nil
}

// ListForClub retrieves the books on a club's reading list
func (r *PostgresBookRepository) ListForClub(ctx context.Context, clubID string) ([]models.Book, error) {
	query := fmt.Sprintf(`
		SELECT b.id, b.google_books_id, b.title, b.author_name, b.created_at
		FROM %s b
		JOIN %s cb ON cb.book_id = b.id
		WHERE cb.club_id = $1
		ORDER BY b.title
	`, r.tables.Books, r.tables.BookClubs)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("list club books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		err := rows.Scan(
			&book.ID,
			&book.GoogleBooksID,
			&book.Title,
			&book.AuthorName,
			&book.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	if books == nil {
		books = []models.Book{}
	}

	return books, nil
}

// getExistingBookID queries for an existing book by google_books_id
func (r *PostgresBookRepository) getExistingBookID(ctx context.Context, googleBooksID string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE google_books_id = $1
	`, r.tables.Books)

	var id string
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, googleBooksID).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing book ID: %w", err)
	}

	return id, nil
}
