package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new user. The ID comes from the identity provider's
// subject claim, not from the database.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, full_name, email)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, r.tables.Users)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
	).Scan(&user.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "email already registered",
				ResourceType: "user",
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, full_name, email, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, full_name, email, created_at
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// Follow records a follow relation. Duplicate follows are a no-op.
func (r *PostgresUserRepository) Follow(ctx context.Context, followerID, followingID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.UserFollows)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, followerID, followingID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", followingID, domain.ErrNotFound)
		}
		return fmt.Errorf("follow user: %w", err)
	}
	return nil
}

// Unfollow removes a follow relation. Removing an absent relation is a no-op.
func (r *PostgresUserRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND following_id = $2
	`, r.tables.UserFollows)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("unfollow user: %w", err)
	}
	return nil
}

// ListFollowing retrieves the users that userID follows
func (r *PostgresUserRepository) ListFollowing(ctx context.Context, userID string) ([]models.UserFollow, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.full_name
		FROM %s u
		JOIN %s f ON f.following_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.full_name
	`, r.tables.Users, r.tables.UserFollows)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	defer rows.Close()

	var following []models.UserFollow
	for rows.Next() {
		var f models.UserFollow
		if err := rows.Scan(&f.ID, &f.FullName); err != nil {
			return nil, fmt.Errorf("scan following: %w", err)
		}
		following = append(following, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate following: %w", err)
	}

	if following == nil {
		following = []models.UserFollow{}
	}

	return following, nil
}

// AddBook attaches a book to the user's shelf
func (r *PostgresUserRepository) AddBook(ctx context.Context, userID, bookID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.BookUsers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, bookID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
		}
		return fmt.Errorf("add book to user: %w", err)
	}
	return nil
}

// RemoveBook detaches a book from the user's shelf
func (r *PostgresUserRepository) RemoveBook(ctx context.Context, userID, bookID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND book_id = $2
	`, r.tables.BookUsers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, bookID); err != nil {
		return fmt.Errorf("remove book from user: %w", err)
	}
	return nil
}
