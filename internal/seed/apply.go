package seed

import (
	"context"
	"fmt"
	"log/slog"

	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
	"wellread/internal/domain/services"

	"github.com/google/uuid"
)

// Seeder applies fixtures through services so seeded data passes the same
// authorization and uniqueness checks as API traffic. Users and catalog
// books go through repositories directly: fixture users get generated IDs
// in place of identity-provider subjects, and books bypass the Google Books
// lookup.
type Seeder struct {
	userRepo    repositories.UserRepository
	bookRepo    repositories.BookRepository
	clubService services.ClubService
	noteService services.NoteService
	tagService  services.TagService
	logger      *slog.Logger
}

// NewSeeder creates a new fixture seeder
func NewSeeder(
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	clubService services.ClubService,
	noteService services.NoteService,
	tagService services.TagService,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		clubService: clubService,
		noteService: noteService,
		tagService:  tagService,
		logger:      logger,
	}
}

// Apply creates all fixture data in dependency order
func (s *Seeder) Apply(ctx context.Context, fx *Fixtures) error {
	userIDs := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		user := &models.User{
			ID:       uuid.NewString(),
			FullName: u.FullName,
			Email:    u.Email,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Key, err)
		}
		userIDs[u.Key] = user.ID
		s.logger.Info("seeded user", "key", u.Key, "id", user.ID)
	}

	bookIDs := make(map[string]string, len(fx.Books))
	for _, b := range fx.Books {
		book := &models.Book{
			GoogleBooksID: b.GoogleBooksID,
			Title:         b.Title,
			AuthorName:    b.AuthorName,
		}
		if err := s.bookRepo.Create(ctx, book); err != nil {
			return fmt.Errorf("seed book %q: %w", b.Key, err)
		}
		bookIDs[b.Key] = book.ID
		s.logger.Info("seeded book", "key", b.Key, "id", book.ID)
	}

	clubIDs := make(map[string]string, len(fx.Clubs))
	clubAdmins := make(map[string]string, len(fx.Clubs))
	for _, c := range fx.Clubs {
		adminID := userIDs[c.Admin]
		club, err := s.clubService.CreateClub(ctx, &services.CreateClubRequest{
			UserID: adminID,
			Name:   c.Name,
		})
		if err != nil {
			return fmt.Errorf("seed club %q: %w", c.Key, err)
		}
		clubIDs[c.Key] = club.ID
		clubAdmins[c.Key] = adminID

		for _, m := range c.Members {
			if m == c.Admin {
				continue
			}
			if _, err := s.clubService.JoinClub(ctx, club.ID, userIDs[m]); err != nil {
				return fmt.Errorf("seed club %q member %q: %w", c.Key, m, err)
			}
		}
		for _, b := range c.Books {
			if err := s.clubService.AddBook(ctx, club.ID, bookIDs[b], adminID); err != nil {
				return fmt.Errorf("seed club %q book %q: %w", c.Key, b, err)
			}
		}
		if c.CurrentBook != "" {
			currentID := bookIDs[c.CurrentBook]
			_, err := s.clubService.UpdateClub(ctx, club.ID, adminID, &services.UpdateClubRequest{
				CurrentBookID: &currentID,
			})
			if err != nil {
				return fmt.Errorf("seed club %q current book: %w", c.Key, err)
			}
		}
		s.logger.Info("seeded club", "key", c.Key, "id", club.ID)
	}

	tagIDs := make(map[string]string, len(fx.Tags))
	for _, t := range fx.Tags {
		tag, err := s.tagService.CreateTag(ctx, &services.CreateTagRequest{
			UserID: clubAdmins[t.Club],
			ClubID: clubIDs[t.Club],
			Name:   t.Name,
		})
		if err != nil {
			return fmt.Errorf("seed tag %q in club %q: %w", t.Name, t.Club, err)
		}
		tagIDs[t.Club+"/"+t.Name] = tag.ID
	}

	clubTagIDs := make(map[string]string, len(fx.ClubTags))
	for _, ct := range fx.ClubTags {
		clubTag, err := s.tagService.CreateClubTag(ctx, &services.CreateClubTagRequest{
			UserID: clubAdmins[ct.Club],
			ClubID: clubIDs[ct.Club],
			BookID: bookIDs[ct.Book],
			Name:   ct.Name,
		})
		if err != nil {
			return fmt.Errorf("seed club tag %q in club %q: %w", ct.Name, ct.Club, err)
		}
		clubTagIDs[ct.Club+"/"+ct.Name] = clubTag.ID
	}

	for i, n := range fx.Notes {
		authorID := userIDs[n.Author]
		note, err := s.noteService.CreateNote(ctx, &services.CreateNoteRequest{
			UserID:  authorID,
			ClubID:  clubIDs[n.Club],
			BookID:  bookIDs[n.Book],
			Content: n.Content,
			Private: n.Private,
		})
		if err != nil {
			return fmt.Errorf("seed note %d: %w", i, err)
		}

		if len(n.Tags) > 0 || len(n.ClubTags) > 0 {
			req := &services.NoteTagsRequest{}
			for _, name := range n.Tags {
				id, ok := tagIDs[n.Club+"/"+name]
				if !ok {
					return fmt.Errorf("seed note %d: unknown tag %q in club %q", i, name, n.Club)
				}
				req.Tags = append(req.Tags, id)
			}
			for _, name := range n.ClubTags {
				id, ok := clubTagIDs[n.Club+"/"+name]
				if !ok {
					return fmt.Errorf("seed note %d: unknown club tag %q in club %q", i, name, n.Club)
				}
				req.ClubTags = append(req.ClubTags, id)
			}
			if err := s.noteService.TagNote(ctx, note.ID, authorID, req); err != nil {
				return fmt.Errorf("seed note %d tags: %w", i, err)
			}
		}
	}

	s.logger.Info("fixtures applied",
		"users", len(fx.Users),
		"books", len(fx.Books),
		"clubs", len(fx.Clubs),
		"tags", len(fx.Tags),
		"club_tags", len(fx.ClubTags),
		"notes", len(fx.Notes),
	)

	return nil
}
