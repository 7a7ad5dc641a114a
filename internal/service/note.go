package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wellread/internal/config"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
	"wellread/internal/domain/services"
	"wellread/internal/service/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// noteService implements the NoteService interface
type noteService struct {
	noteRepo  repositories.NoteRepository
	noteAuth  *authz.NoteAuthorizer
	tagAuth   *authz.TagAuthorizer
	clubAuth  *authz.ClubAuthorizer
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo repositories.NoteRepository,
	noteAuth *authz.NoteAuthorizer,
	tagAuth *authz.TagAuthorizer,
	clubAuth *authz.ClubAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		noteAuth:  noteAuth,
		tagAuth:   tagAuth,
		clubAuth:  clubAuth,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateNote creates a note after validating its club and book scope
func (s *noteService) CreateNote(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	note := &models.Note{
		UserID:  req.UserID,
		ClubID:  req.ClubID,
		BookID:  req.BookID,
		Content: req.Content,
		Private: req.Private,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.noteAuth.ValidForCreation(txCtx, req.UserID, req.ClubID, req.BookID); err != nil {
			return err
		}
		return s.noteRepo.Create(txCtx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"user_id", note.UserID,
		"club_id", note.ClubID,
		"private", note.Private,
	)

	return note, nil
}

// GetNote retrieves a single note, enforcing privacy
func (s *noteService) GetNote(ctx context.Context, noteID, userID string) (*models.Note, error) {
	return s.noteAuth.Read(ctx, userID, noteID)
}

// ListPersonalNotes retrieves the caller's own notes
func (s *noteService) ListPersonalNotes(ctx context.Context, userID string, q services.PersonalNotesQuery) ([]models.Note, error) {
	return s.noteRepo.ListPersonal(ctx, userID, repositories.PersonalNoteFilter{
		ClubID:          q.ClubID,
		IncludePrivate:  q.IncludePrivate,
		IncludeArchived: q.IncludeArchived,
	})
}

// ListClubNotes retrieves a club's notes for a member. The repository layer
// excludes private notes unconditionally.
func (s *noteService) ListClubNotes(ctx context.Context, userID string, q services.ClubNotesQuery) ([]models.Note, error) {
	if _, err := s.clubAuth.ReadAsMember(ctx, userID, q.ClubID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListForClub(ctx, repositories.ClubNoteFilter{
		ClubID:          q.ClubID,
		IncludeArchived: q.IncludeArchived,
	})
}

// UpdateNote updates a note; author only
func (s *noteService) UpdateNote(ctx context.Context, noteID, userID string, req *services.UpdateNoteRequest) (*models.Note, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var note *models.Note
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		note, err = s.noteAuth.CanUpdate(txCtx, userID, noteID)
		if err != nil {
			return err
		}

		if req.Content != nil {
			note.Content = *req.Content
		}
		if req.Private != nil {
			note.Private = *req.Private
		}
		if req.Archived != nil {
			note.Archived = *req.Archived
		}

		return s.noteRepo.Update(txCtx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "id", note.ID, "user_id", userID)

	return note, nil
}

// TagNote attaches tags and club tags to a note. Only the author may tag,
// and every tag must belong to the note's club.
func (s *noteService) TagNote(ctx context.Context, noteID, userID string, req *services.NoteTagsRequest) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		note, err := s.noteAuth.CanUpdate(txCtx, userID, noteID)
		if err != nil {
			return err
		}

		for _, tagID := range req.Tags {
			tag, err := s.tagAuth.Read(txCtx, userID, tagID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("tag %s does not exist: %w", tagID, domain.ErrValidation)
				}
				return err
			}
			if tag.ClubID != note.ClubID {
				return fmt.Errorf("tag %s belongs to a different club: %w", tagID, domain.ErrValidation)
			}
			if err := s.noteRepo.AddTag(txCtx, noteID, tagID); err != nil {
				return err
			}
		}

		for _, clubTagID := range req.ClubTags {
			clubTag, err := s.tagAuth.ReadClubTag(txCtx, userID, clubTagID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("club tag %s does not exist: %w", clubTagID, domain.ErrValidation)
				}
				return err
			}
			if clubTag.ClubID != note.ClubID {
				return fmt.Errorf("club tag %s belongs to a different club: %w", clubTagID, domain.ErrValidation)
			}
			if err := s.noteRepo.AddClubTag(txCtx, noteID, clubTagID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("note tagged",
		"id", noteID,
		"user_id", userID,
		"tags", len(req.Tags),
		"club_tags", len(req.ClubTags),
	)

	return nil
}

// UntagNote detaches tags and club tags from a note; author only. Detaching
// a tag that was never attached is a no-op.
func (s *noteService) UntagNote(ctx context.Context, noteID, userID string, req *services.NoteTagsRequest) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.noteAuth.CanUpdate(txCtx, userID, noteID); err != nil {
			return err
		}

		for _, tagID := range req.Tags {
			if err := s.noteRepo.RemoveTag(txCtx, noteID, tagID); err != nil {
				return err
			}
		}
		for _, clubTagID := range req.ClubTags {
			if err := s.noteRepo.RemoveClubTag(txCtx, noteID, clubTagID); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteNote deletes a note; author only
func (s *noteService) DeleteNote(ctx context.Context, noteID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.noteAuth.CanDelete(txCtx, userID, noteID); err != nil {
			return err
		}
		return s.noteRepo.Delete(txCtx, noteID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", noteID, "user_id", userID)

	return nil
}

// validateCreateRequest validates a create note request
func (s *noteService) validateCreateRequest(req *services.CreateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ClubID, validation.Required),
		validation.Field(&req.BookID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxNoteContentLength),
		),
	)
}

// validateUpdateRequest validates an update note request
func (s *noteService) validateUpdateRequest(req *services.UpdateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxNoteContentLength),
		),
	)
}
