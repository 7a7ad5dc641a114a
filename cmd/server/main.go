package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"wellread/internal/auth"
	"wellread/internal/config"
	"wellread/internal/googlebooks"
	"wellread/internal/handler"
	"wellread/internal/middleware"
	"wellread/internal/repository/postgres"
	"wellread/internal/service"
	"wellread/internal/service/authz"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

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

	// Authorizers compose: tags, notes, and books all defer to club
	// membership checks
	clubAuth := authz.NewClubAuthorizer(clubRepo, tagRepo)
	noteAuth := authz.NewNoteAuthorizer(noteRepo, bookRepo, clubAuth)
	tagAuth := authz.NewTagAuthorizer(tagRepo, clubAuth)
	bookAuth := authz.NewBookAuthorizer(bookRepo, clubAuth)
	userAuth := authz.NewUserAuthorizer(userRepo)

	books := googlebooks.NewClient()
	if cfg.GoogleBooksURL != "" {
		books = googlebooks.NewClientWithConfig(cfg.GoogleBooksURL, googlebooks.DefaultTimeout)
	}

	userService := service.NewUserService(userRepo, userAuth, txManager, logger)
	clubService := service.NewClubService(clubRepo, bookRepo, clubAuth, bookAuth, txManager, logger)
	noteService := service.NewNoteService(noteRepo, noteAuth, tagAuth, clubAuth, txManager, logger)
	tagService := service.NewTagService(tagRepo, tagAuth, clubAuth, bookRepo, txManager, logger)
	bookService := service.NewBookService(bookRepo, userRepo, bookAuth, books, txManager, logger)

	userHandler := handler.NewUserHandler(userService, logger)
	clubHandler := handler.NewClubHandler(clubService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	bookHandler := handler.NewBookHandler(bookService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// User routes
	mux.HandleFunc("POST /api/users", userHandler.Register)
	mux.HandleFunc("GET /api/users/me", userHandler.GetMe)
	mux.HandleFunc("GET /api/users/me/following", userHandler.ListFollowing)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetUser)
	mux.HandleFunc("POST /api/users/{id}/follow", userHandler.Follow)
	mux.HandleFunc("DELETE /api/users/{id}/follow", userHandler.Unfollow)

	// Shelf routes
	mux.HandleFunc("POST /api/users/me/books", bookHandler.AddToShelf)
	mux.HandleFunc("DELETE /api/users/me/books/{id}", bookHandler.RemoveFromShelf)

	// Book routes
	mux.HandleFunc("GET /api/books/search", bookHandler.Search) // Must come before {id} route
	mux.HandleFunc("GET /api/books/{id}", bookHandler.GetBook)

	// Club routes
	mux.HandleFunc("POST /api/clubs", clubHandler.CreateClub)
	mux.HandleFunc("GET /api/clubs", clubHandler.ListClubs)
	mux.HandleFunc("GET /api/clubs/{id}", clubHandler.GetClub)
	mux.HandleFunc("PATCH /api/clubs/{id}", clubHandler.UpdateClub)
	mux.HandleFunc("DELETE /api/clubs/{id}", clubHandler.DeleteClub)
	mux.HandleFunc("POST /api/clubs/{id}/join", clubHandler.JoinClub)
	mux.HandleFunc("POST /api/clubs/{id}/leave", clubHandler.LeaveClub)
	mux.HandleFunc("GET /api/clubs/{id}/books", clubHandler.ListBooks)
	mux.HandleFunc("POST /api/clubs/{id}/books/{bookID}", clubHandler.AddBook)
	mux.HandleFunc("DELETE /api/clubs/{id}/books/{bookID}", clubHandler.RemoveBook)

	// Note routes
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("GET /api/notes", noteHandler.ListPersonalNotes)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)
	mux.HandleFunc("POST /api/notes/{id}/tags", noteHandler.TagNote)
	mux.HandleFunc("DELETE /api/notes/{id}/tags", noteHandler.UntagNote)
	mux.HandleFunc("GET /api/clubs/{id}/notes", noteHandler.ListClubNotes)

	// Tag routes
	mux.HandleFunc("POST /api/tags", tagHandler.CreateTag)
	mux.HandleFunc("GET /api/tags/{id}", tagHandler.GetTag)
	mux.HandleFunc("PATCH /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.DeleteTag)
	mux.HandleFunc("GET /api/clubs/{id}/tags", tagHandler.ListTags)

	// Club tag routes
	mux.HandleFunc("POST /api/club-tags", tagHandler.CreateClubTag)
	mux.HandleFunc("GET /api/club-tags/{id}", tagHandler.GetClubTag)
	mux.HandleFunc("PATCH /api/club-tags/{id}", tagHandler.UpdateClubTag)
	mux.HandleFunc("DELETE /api/club-tags/{id}", tagHandler.DeleteClubTag)
	mux.HandleFunc("GET /api/clubs/{id}/club-tags", tagHandler.ListClubTags)

	// Build middleware chain in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	var root http.Handler = mux
	root = middleware.Auth(verifier, logger, "/health")(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
