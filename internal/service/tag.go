package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wellread/internal/config"
	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
	"wellread/internal/domain/services"
	"wellread/internal/service/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// tagService implements the TagService interface
type tagService struct {
	tagRepo   repositories.TagRepository
	tagAuth   *authz.TagAuthorizer
	clubAuth  *authz.ClubAuthorizer
	bookRepo  repositories.BookRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo repositories.TagRepository,
	tagAuth *authz.TagAuthorizer,
	clubAuth *authz.ClubAuthorizer,
	bookRepo repositories.BookRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TagService {
	return &tagService{
		tagRepo:   tagRepo,
		tagAuth:   tagAuth,
		clubAuth:  clubAuth,
		bookRepo:  bookRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateTag creates a tag. Any club member may create one; the name must be
// unique among the club's non-archived tags and club tags.
func (s *tagService) CreateTag(ctx context.Context, req *services.CreateTagRequest) (*models.Tag, error) {
	if err := s.validateCreateTagRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag := &models.Tag{
		ClubID: req.ClubID,
		Name:   strings.TrimSpace(req.Name),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tagAuth.CanCreate(txCtx, req.UserID, req.ClubID, tag.Name); err != nil {
			return err
		}
		return s.tagRepo.CreateTag(txCtx, tag)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created",
		"id", tag.ID,
		"club_id", tag.ClubID,
		"name", tag.Name,
	)

	return tag, nil
}

// GetTag retrieves a tag for a member of its club
func (s *tagService) GetTag(ctx context.Context, tagID, userID string) (*models.Tag, error) {
	return s.tagAuth.Read(ctx, userID, tagID)
}

// ListTags retrieves a club's tags for a member
func (s *tagService) ListTags(ctx context.Context, clubID, userID string, includeArchived bool) ([]models.Tag, error) {
	if _, err := s.clubAuth.ReadAsMember(ctx, userID, clubID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListTagsForClub(ctx, clubID, includeArchived)
}

// UpdateTag updates a tag; club admin only. Renaming re-checks name
// uniqueness within the club.
func (s *tagService) UpdateTag(ctx context.Context, tagID, userID string, req *services.UpdateTagRequest) (*models.Tag, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var tag *models.Tag
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		tag, err = s.tagAuth.IsAdmin(txCtx, userID, tagID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name != tag.Name {
				if err := s.clubAuth.NoDuplicateTagName(txCtx, userID, tag.ClubID, name); err != nil {
					return err
				}
				tag.Name = name
			}
		}
		if req.Archived != nil {
			tag.Archived = *req.Archived
		}

		return s.tagRepo.UpdateTag(txCtx, tag)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", tag.ID, "user_id", userID)

	return tag, nil
}

// DeleteTag deletes a tag; club admin only
func (s *tagService) DeleteTag(ctx context.Context, tagID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tagAuth.IsAdmin(txCtx, userID, tagID); err != nil {
			return err
		}
		return s.tagRepo.DeleteTag(txCtx, tagID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", tagID, "user_id", userID)

	return nil
}

// CreateClubTag creates a club tag pinned to a book; club admin only
func (s *tagService) CreateClubTag(ctx context.Context, req *services.CreateClubTagRequest) (*models.ClubTag, error) {
	if err := s.validateCreateClubTagRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	clubTag := &models.ClubTag{
		ClubID: req.ClubID,
		BookID: req.BookID,
		Name:   strings.TrimSpace(req.Name),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.clubAuth.IsAdmin(txCtx, req.UserID, req.ClubID); err != nil {
			return err
		}
		if err := s.clubAuth.NoDuplicateTagName(txCtx, req.UserID, req.ClubID, clubTag.Name); err != nil {
			return err
		}
		if _, err := s.bookRepo.GetByID(txCtx, req.BookID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("book %s does not exist: %w", req.BookID, domain.ErrValidation)
			}
			return err
		}
		return s.tagRepo.CreateClubTag(txCtx, clubTag)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("club tag created",
		"id", clubTag.ID,
		"club_id", clubTag.ClubID,
		"book_id", clubTag.BookID,
		"name", clubTag.Name,
	)

	return clubTag, nil
}

// GetClubTag retrieves a club tag for a member of its club
func (s *tagService) GetClubTag(ctx context.Context, clubTagID, userID string) (*models.ClubTag, error) {
	return s.tagAuth.ReadClubTag(ctx, userID, clubTagID)
}

// ListClubTags retrieves a club's club tags for a member, optionally
// narrowed to one book
func (s *tagService) ListClubTags(ctx context.Context, clubID, bookID, userID string, includeArchived bool) ([]models.ClubTag, error) {
	if _, err := s.clubAuth.ReadAsMember(ctx, userID, clubID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListClubTagsForClub(ctx, clubID, bookID, includeArchived)
}

// UpdateClubTag updates a club tag; club admin only
func (s *tagService) UpdateClubTag(ctx context.Context, clubTagID, userID string, req *services.UpdateTagRequest) (*models.ClubTag, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var clubTag *models.ClubTag
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		clubTag, err = s.tagAuth.ClubTagIsAdmin(txCtx, userID, clubTagID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name != clubTag.Name {
				if err := s.clubAuth.NoDuplicateTagName(txCtx, userID, clubTag.ClubID, name); err != nil {
					return err
				}
				clubTag.Name = name
			}
		}
		if req.Archived != nil {
			clubTag.Archived = *req.Archived
		}

		return s.tagRepo.UpdateClubTag(txCtx, clubTag)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("club tag updated", "id", clubTag.ID, "user_id", userID)

	return clubTag, nil
}

// DeleteClubTag deletes a club tag; club admin only
func (s *tagService) DeleteClubTag(ctx context.Context, clubTagID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tagAuth.ClubTagIsAdmin(txCtx, userID, clubTagID); err != nil {
			return err
		}
		return s.tagRepo.DeleteClubTag(txCtx, clubTagID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("club tag deleted", "id", clubTagID, "user_id", userID)

	return nil
}

// validateCreateTagRequest validates a create tag request
func (s *tagService) validateCreateTagRequest(req *services.CreateTagRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ClubID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTagNameLength),
			validation.By(validateTrimmedNotEmpty),
		),
	)
}

// validateCreateClubTagRequest validates a create club tag request
func (s *tagService) validateCreateClubTagRequest(req *services.CreateClubTagRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ClubID, validation.Required),
		validation.Field(&req.BookID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTagNameLength),
			validation.By(validateTrimmedNotEmpty),
		),
	)
}

// validateUpdateRequest validates an update tag request
func (s *tagService) validateUpdateRequest(req *services.UpdateTagRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxTagNameLength),
		),
	)
}
