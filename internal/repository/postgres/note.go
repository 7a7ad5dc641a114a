package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, club_id, book_id, content, private, archived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Notes)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		note.UserID,
		note.ClubID,
		note.BookID,
		note.Content,
		note.Private,
		note.Archived,
	).Scan(&note.ID, &note.CreatedAt)

	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID regardless of privacy; visibility is the
// authorizer's decision, not the repository's.
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, club_id, book_id, content, private, archived, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Notes)

	var note models.Note
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.UserID,
		&note.ClubID,
		&note.BookID,
		&note.Content,
		&note.Private,
		&note.Archived,
		&note.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

// ListPersonal retrieves userID's own notes. Private and archived notes
// are excluded unless the filter asks for them.
func (r *PostgresNoteRepository) ListPersonal(ctx context.Context, userID string, filter repositories.PersonalNoteFilter) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, club_id, book_id, content, private, archived, created_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Notes)
	args := []interface{}{userID}

	if filter.ClubID != "" {
		args = append(args, filter.ClubID)
		query += fmt.Sprintf(" AND club_id = $%d", len(args))
	}
	if !filter.IncludePrivate {
		query += " AND NOT private"
	}
	if !filter.IncludeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY created_at DESC"

	return r.queryNotes(ctx, query, args...)
}

// ListForClub retrieves a club's notes. Private notes never appear here,
// not even the caller's own; they surface only via direct read or the
// personal listing.
func (r *PostgresNoteRepository) ListForClub(ctx context.Context, filter repositories.ClubNoteFilter) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, club_id, book_id, content, private, archived, created_at
		FROM %s
		WHERE club_id = $1 AND NOT private
	`, r.tables.Notes)

	if !filter.IncludeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY created_at DESC"

	return r.queryNotes(ctx, query, filter.ClubID)
}

// Update updates a note's mutable fields
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, private = $2, archived = $3
		WHERE id = $4
	`, r.tables.Notes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		note.Content,
		note.Private,
		note.Archived,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Notes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddTag associates a tag with the note
func (r *PostgresNoteRepository) AddTag(ctx context.Context, noteID, tagID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (note_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.NoteTags)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, noteID, tagID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
		}
		return fmt.Errorf("add tag to note: %w", err)
	}
	return nil
}

// RemoveTag removes a tag association from the note
func (r *PostgresNoteRepository) RemoveTag(ctx context.Context, noteID, tagID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE note_id = $1 AND tag_id = $2
	`, r.tables.NoteTags)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, noteID, tagID); err != nil {
		return fmt.Errorf("remove tag from note: %w", err)
	}
	return nil
}

// AddClubTag associates a club tag with the note
func (r *PostgresNoteRepository) AddClubTag(ctx context.Context, noteID, clubTagID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (note_id, club_tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.NoteClubTags)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, noteID, clubTagID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("club tag %s: %w", clubTagID, domain.ErrNotFound)
		}
		return fmt.Errorf("add club tag to note: %w", err)
	}
	return nil
}

// RemoveClubTag removes a club tag association from the note
func (r *PostgresNoteRepository) RemoveClubTag(ctx context.Context, noteID, clubTagID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE note_id = $1 AND club_tag_id = $2
	`, r.tables.NoteClubTags)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, noteID, clubTagID); err != nil {
		return fmt.Errorf("remove club tag from note: %w", err)
	}
	return nil
}

// queryNotes runs a note listing query and scans the rows
func (r *PostgresNoteRepository) queryNotes(ctx context.Context, query string, args ...interface{}) ([]models.Note, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.Note{}
	}

	return notes, nil
}

func scanNotes(rows pgx.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.ClubID,
			&note.BookID,
			&note.Content,
			&note.Private,
			&note.Archived,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}
