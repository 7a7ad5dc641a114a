package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"wellread/internal/config"
	"wellread/internal/repository/postgres"
	"wellread/internal/seed"
	"wellread/internal/service"
	"wellread/internal/service/authz"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't apply fixtures")
	fixturesPath := flag.String("fixtures", "fixtures/dev.yaml", "Path to the YAML fixtures file")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	fx, err := seed.Load(*fixturesPath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	clubRepo := postgres.NewClubRepository(repoConfig)
	bookRepo := postgres.NewBookRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	clubAuth := authz.NewClubAuthorizer(clubRepo, tagRepo)
	noteAuth := authz.NewNoteAuthorizer(noteRepo, bookRepo, clubAuth)
	tagAuth := authz.NewTagAuthorizer(tagRepo, clubAuth)
	bookAuth := authz.NewBookAuthorizer(bookRepo, clubAuth)

	clubService := service.NewClubService(clubRepo, bookRepo, clubAuth, bookAuth, txManager, logger)
	noteService := service.NewNoteService(noteRepo, noteAuth, tagAuth, clubAuth, txManager, logger)
	tagService := service.NewTagService(tagRepo, tagAuth, clubAuth, bookRepo, txManager, logger)

	seeder := seed.NewSeeder(userRepo, bookRepo, clubService, noteService, tagService, logger)
	if err := seeder.Apply(ctx, fx); err != nil {
		log.Fatalf("Failed to apply fixtures: %v", err)
	}

	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	// Users carry identity-provider subjects, so no ID default
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Books + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			google_books_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			author_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Clubs + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			admin_user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			current_book_id UUID REFERENCES ` + tables.Books + `(id) ON DELETE SET NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ClubMembers + ` (
			club_id UUID NOT NULL REFERENCES ` + tables.Clubs + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			PRIMARY KEY (club_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.BookUsers + ` (
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, book_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.BookClubs + ` (
			club_id UUID NOT NULL REFERENCES ` + tables.Clubs + `(id) ON DELETE CASCADE,
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			PRIMARY KEY (club_id, book_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Notes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			club_id UUID NOT NULL REFERENCES ` + tables.Clubs + `(id) ON DELETE CASCADE,
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			private BOOLEAN NOT NULL DEFAULT FALSE,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Tags + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			club_id UUID NOT NULL REFERENCES ` + tables.Clubs + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ClubTags + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			club_id UUID NOT NULL REFERENCES ` + tables.Clubs + `(id) ON DELETE CASCADE,
			book_id UUID NOT NULL REFERENCES ` + tables.Books + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.NoteTags + ` (
			note_id UUID NOT NULL REFERENCES ` + tables.Notes + `(id) ON DELETE CASCADE,
			tag_id UUID NOT NULL REFERENCES ` + tables.Tags + `(id) ON DELETE CASCADE,
			PRIMARY KEY (note_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.NoteClubTags + ` (
			note_id UUID NOT NULL REFERENCES ` + tables.Notes + `(id) ON DELETE CASCADE,
			club_tag_id UUID NOT NULL REFERENCES ` + tables.ClubTags + `(id) ON DELETE CASCADE,
			PRIMARY KEY (note_id, club_tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserFollows + ` (
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			following_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, following_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	// Name uniqueness across tags and club tags in a club is enforced in the
	// service layer; these indexes back the per-table half of the rule
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_club_id ON ` + tables.Notes + `(club_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_user_id ON ` + tables.Notes + `(user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `tags_club_name ON ` + tables.Tags + `(club_id, name) WHERE NOT archived`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `club_tags_club_name ON ` + tables.ClubTags + `(club_id, name) WHERE NOT archived`,
	}

	for _, stmt := range indexes {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	ordered := []string{
		tables.NoteClubTags,
		tables.NoteTags,
		tables.Notes,
		tables.ClubTags,
		tables.Tags,
		tables.UserFollows,
		tables.BookClubs,
		tables.BookUsers,
		tables.ClubMembers,
		tables.Clubs,
		tables.Books,
		tables.Users,
	}

	for _, table := range ordered {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
