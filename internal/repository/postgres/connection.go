package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"wellread/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users        string
	Clubs        string
	ClubMembers  string
	Books        string
	BookUsers    string
	BookClubs    string
	Notes        string
	Tags         string
	ClubTags     string
	NoteTags     string
	NoteClubTags string
	UserFollows  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:        fmt.Sprintf("%susers", prefix),
		Clubs:        fmt.Sprintf("%sclubs", prefix),
		ClubMembers:  fmt.Sprintf("%sclubs_users", prefix),
		Books:        fmt.Sprintf("%sbooks", prefix),
		BookUsers:    fmt.Sprintf("%sbooks_users", prefix),
		BookClubs:    fmt.Sprintf("%sbooks_clubs", prefix),
		Notes:        fmt.Sprintf("%snotes", prefix),
		Tags:         fmt.Sprintf("%stags", prefix),
		ClubTags:     fmt.Sprintf("%sclub_tags", prefix),
		NoteTags:     fmt.Sprintf("%snotes_tags", prefix),
		NoteClubTags: fmt.Sprintf("%sclub_tags_notes", prefix),
		UserFollows:  fmt.Sprintf("%suser_following", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Dynamic table names via fmt.Sprintf are safe with prepared statements
// because the SQL string is interpolated before being sent to the database;
// each environment prefix gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool. This lets repositories
// transparently participate in transactions started by the service layer.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
