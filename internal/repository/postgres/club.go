package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// PostgresClubRepository implements the ClubRepository interface
type PostgresClubRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewClubRepository creates a new club repository
func NewClubRepository(config *RepositoryConfig) repositories.ClubRepository {
	return &PostgresClubRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new club
func (r *PostgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, admin_user_id, current_book_id, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.Clubs)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		club.Name,
		club.AdminUserID,
		club.CurrentBookID,
		club.IsActive,
	).Scan(&club.ID, &club.CreatedAt)

	if err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	return nil
}

// GetByID retrieves a club by ID regardless of membership
func (r *PostgresClubRepository) GetByID(ctx context.Context, id string) (*models.Club, error) {
	query := fmt.Sprintf(`
		SELECT id, name, admin_user_id, current_book_id, is_active, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Clubs)

	return r.scanClub(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), id)
}

// GetForMember retrieves a club only if userID is a member. Absent club and
// non-member caller both surface as ErrNotFound.
func (r *PostgresClubRepository) GetForMember(ctx context.Context, clubID, userID string) (*models.Club, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.admin_user_id, c.current_book_id, c.is_active, c.created_at
		FROM %s c
		JOIN %s m ON m.club_id = c.id
		WHERE c.id = $1 AND m.user_id = $2
	`, r.tables.Clubs, r.tables.ClubMembers)

	return r.scanClub(GetExecutor(ctx, r.pool).QueryRow(ctx, query, clubID, userID), clubID)
}

// ListForMember retrieves the clubs userID belongs to, newest first
func (r *PostgresClubRepository) ListForMember(ctx context.Context, userID string, activeOnly bool) ([]models.Club, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.admin_user_id, c.current_book_id, c.is_active, c.created_at
		FROM %s c
		JOIN %s m ON m.club_id = c.id
		WHERE m.user_id = $1
	`, r.tables.Clubs, r.tables.ClubMembers)
	if activeOnly {
		query += " AND c.is_active"
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		var club models.Club
		err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.AdminUserID,
			&club.CurrentBookID,
			&club.IsActive,
			&club.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clubs: %w", err)
	}

	if clubs == nil {
		clubs = []models.Club{}
	}

	return clubs, nil
}

// Update updates a club's mutable fields. The admin is set at creation and
// never updated here.
func (r *PostgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, is_active = $2, current_book_id = $3
		WHERE id = $4
	`, r.tables.Clubs)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		club.Name,
		club.IsActive,
		club.CurrentBookID,
		club.ID,
	)
	if err != nil {
		return fmt.Errorf("update club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("club %s: %w", club.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a club. Membership, reading list, and club tag rows go
// with it via ON DELETE CASCADE.
func (r *PostgresClubRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Clubs)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("club %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddMember adds userID to the club. Adding an existing member is a no-op.
func (r *PostgresClubRepository) AddMember(ctx context.Context, clubID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (club_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.ClubMembers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, clubID, userID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("club %s: %w", clubID, domain.ErrNotFound)
		}
		return fmt.Errorf("add club member: %w", err)
	}
	return nil
}

// RemoveMember removes userID from the club
func (r *PostgresClubRepository) RemoveMember(ctx context.Context, clubID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE club_id = $1 AND user_id = $2
	`, r.tables.ClubMembers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, clubID, userID); err != nil {
		return fmt.Errorf("remove club member: %w", err)
	}
	return nil
}

// AddBook attaches a book to the club's reading list
func (r *PostgresClubRepository) AddBook(ctx context.Context, clubID, bookID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (club_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.BookClubs)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, clubID, bookID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
		}
		return fmt.Errorf("add book to club: %w", err)
	}
	return nil
}

// RemoveBook detaches a book from the club's reading list
func (r *PostgresClubRepository) RemoveBook(ctx context.Context, clubID, bookID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE club_id = $1 AND book_id = $2
	`, r.tables.BookClubs)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, clubID, bookID); err != nil {
		return fmt.Errorf("remove book from club: %w", err)
	}
	return nil
}

// scanClub scans a single club row, translating no-rows to ErrNotFound
func (r *PostgresClubRepository) scanClub(row interface{ Scan(dest ...any) error }, id string) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.AdminUserID,
		&club.CurrentBookID,
		&club.IsActive,
		&club.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("club %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	return &club, nil
}
