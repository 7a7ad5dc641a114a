package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// PostgresTagRepository implements the TagRepository interface for both
// tags and club tags.
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// CreateTag creates a new tag
func (r *PostgresTagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (club_id, name, archived)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Tags)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		tag.ClubID,
		tag.Name,
		tag.Archived,
	).Scan(&tag.ID, &tag.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("tag name %q already exists in club", tag.Name),
				ResourceType: "tag",
			}
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// GetTagByID retrieves a tag by ID
func (r *PostgresTagRepository) GetTagByID(ctx context.Context, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, club_id, name, archived, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Tags)

	var tag models.Tag
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.ClubID,
		&tag.Name,
		&tag.Archived,
		&tag.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// ListTagsForClub retrieves a club's tags
func (r *PostgresTagRepository) ListTagsForClub(ctx context.Context, clubID string, includeArchived bool) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, club_id, name, archived, created_at
		FROM %s
		WHERE club_id = $1
	`, r.tables.Tags)
	if !includeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY name"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.ClubID, &tag.Name, &tag.Archived, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	return tags, nil
}

// UpdateTag updates a tag's mutable fields
func (r *PostgresTagRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, archived = $2
		WHERE id = $3
	`, r.tables.Tags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tag.Name, tag.Archived, tag.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("tag name %q already exists in club", tag.Name),
				ResourceType: "tag",
			}
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteTag deletes a tag
func (r *PostgresTagRepository) DeleteTag(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Tags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreateClubTag creates a new club tag
func (r *PostgresTagRepository) CreateClubTag(ctx context.Context, clubTag *models.ClubTag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (club_id, book_id, name, archived)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.ClubTags)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		clubTag.ClubID,
		clubTag.BookID,
		clubTag.Name,
		clubTag.Archived,
	).Scan(&clubTag.ID, &clubTag.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("tag name %q already exists in club", clubTag.Name),
				ResourceType: "club_tag",
			}
		}
		return fmt.Errorf("create club tag: %w", err)
	}

	return nil
}

// GetClubTagByID retrieves a club tag by ID
func (r *PostgresTagRepository) GetClubTagByID(ctx context.Context, id string) (*models.ClubTag, error) {
	query := fmt.Sprintf(`
		SELECT id, club_id, book_id, name, archived, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.ClubTags)

	var clubTag models.ClubTag
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&clubTag.ID,
		&clubTag.ClubID,
		&clubTag.BookID,
		&clubTag.Name,
		&clubTag.Archived,
		&clubTag.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("club tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get club tag: %w", err)
	}

	return &clubTag, nil
}

// ListClubTagsForClub retrieves a club's club tags, optionally narrowed to
// one book
func (r *PostgresTagRepository) ListClubTagsForClub(ctx context.Context, clubID, bookID string, includeArchived bool) ([]models.ClubTag, error) {
	query := fmt.Sprintf(`
		SELECT id, club_id, book_id, name, archived, created_at
		FROM %s
		WHERE club_id = $1
	`, r.tables.ClubTags)
	args := []interface{}{clubID}

	if bookID != "" {
		args = append(args, bookID)
		query += fmt.Sprintf(" AND book_id = $%d", len(args))
	}
	if !includeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY name"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list club tags: %w", err)
	}
	defer rows.Close()

	var clubTags []models.ClubTag
	for rows.Next() {
		var ct models.ClubTag
		if err := rows.Scan(&ct.ID, &ct.ClubID, &ct.BookID, &ct.Name, &ct.Archived, &ct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan club tag: %w", err)
		}
		clubTags = append(clubTags, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate club tags: %w", err)
	}

	if clubTags == nil {
		clubTags = []models.ClubTag{}
	}

	return clubTags, nil
}

// UpdateClubTag updates a club tag's mutable fields
func (r *PostgresTagRepository) UpdateClubTag(ctx context.Context, clubTag *models.ClubTag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, archived = $2
		WHERE id = $3
	`, r.tables.ClubTags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, clubTag.Name, clubTag.Archived, clubTag.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("tag name %q already exists in club", clubTag.Name),
				ResourceType: "club_tag",
			}
		}
		return fmt.Errorf("update club tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("club tag %s: %w", clubTag.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteClubTag deletes a club tag
func (r *PostgresTagRepository) DeleteClubTag(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.ClubTags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete club tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("club tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// NameInUse reports whether a non-archived tag or club tag with the exact
// name exists in the club. Uniqueness spans both kinds.
func (r *PostgresTagRepository) NameInUse(ctx context.Context, clubID, name string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE club_id = $1 AND name = $2 AND NOT archived
		) OR EXISTS (
			SELECT 1 FROM %s WHERE club_id = $1 AND name = $2 AND NOT archived
		)
	`, r.tables.Tags, r.tables.ClubTags)

	var inUse bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, clubID, name).Scan(&inUse); err != nil {
		return false, fmt.Errorf("check tag name in use: %w", err)
	}

	return inUse, nil
}
