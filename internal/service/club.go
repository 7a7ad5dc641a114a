package service

import (
	"context"
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

// clubService implements the ClubService interface
type clubService struct {
	clubRepo  repositories.ClubRepository
	bookRepo  repositories.BookRepository
	clubAuth  *authz.ClubAuthorizer
	bookAuth  *authz.BookAuthorizer
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewClubService creates a new club service
func NewClubService(
	clubRepo repositories.ClubRepository,
	bookRepo repositories.BookRepository,
	clubAuth *authz.ClubAuthorizer,
	bookAuth *authz.BookAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ClubService {
	return &clubService{
		clubRepo:  clubRepo,
		bookRepo:  bookRepo,
		clubAuth:  clubAuth,
		bookAuth:  bookAuth,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateClub creates a club. The creator becomes admin and sole member in
// one transaction so the admin-is-always-a-member invariant holds from the
// first committed state.
func (s *clubService) CreateClub(ctx context.Context, req *services.CreateClubRequest) (*models.Club, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	club := &models.Club{
		Name:          strings.TrimSpace(req.Name),
		AdminUserID:   req.UserID,
		CurrentBookID: req.CurrentBookID,
		IsActive:      true,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.clubRepo.Create(txCtx, club); err != nil {
			return err
		}
		return s.clubRepo.AddMember(txCtx, club.ID, req.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("club created",
		"id", club.ID,
		"name", club.Name,
		"admin_user_id", club.AdminUserID,
	)

	return club, nil
}

// GetClub retrieves a club the user is a member of
func (s *clubService) GetClub(ctx context.Context, clubID, userID string) (*models.Club, error) {
	return s.clubAuth.ReadAsMember(ctx, userID, clubID)
}

// ListClubs retrieves the user's clubs
func (s *clubService) ListClubs(ctx context.Context, userID string, activeOnly bool) ([]models.Club, error) {
	return s.clubRepo.ListForMember(ctx, userID, activeOnly)
}

// UpdateClub updates club metadata; admin only
func (s *clubService) UpdateClub(ctx context.Context, clubID, userID string, req *services.UpdateClubRequest) (*models.Club, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var club *models.Club
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		club, err = s.clubAuth.IsAdmin(txCtx, userID, clubID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			club.Name = strings.TrimSpace(*req.Name)
		}
		if req.IsActive != nil {
			club.IsActive = *req.IsActive
		}
		if req.CurrentBookID != nil {
			club.CurrentBookID = req.CurrentBookID
		}

		return s.clubRepo.Update(txCtx, club)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("club updated", "id", club.ID, "user_id", userID)

	return club, nil
}

// JoinClub adds the user to an existing club. Joining is open to any
// authenticated user today; see ClubAuthorizer.IsInvited.
func (s *clubService) JoinClub(ctx context.Context, clubID, userID string) (*models.Club, error) {
	var club *models.Club
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		club, err = s.clubAuth.IsInvited(txCtx, clubID)
		if err != nil {
			return err
		}
		return s.clubRepo.AddMember(txCtx, clubID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user joined club", "club_id", clubID, "user_id", userID)

	return club, nil
}

// LeaveClub removes the user from a club. The admin cannot leave; a club
// always has exactly one admin and the admin is always a member.
func (s *clubService) LeaveClub(ctx context.Context, clubID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		club, err := s.clubAuth.ReadAsMember(txCtx, userID, clubID)
		if err != nil {
			return err
		}
		if club.AdminUserID == userID {
			return fmt.Errorf("%w: admin cannot leave club", domain.ErrValidation)
		}
		return s.clubRepo.RemoveMember(txCtx, clubID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user left club", "club_id", clubID, "user_id", userID)

	return nil
}

// AddBook puts a book on the club's reading list; any member may do this
func (s *clubService) AddBook(ctx context.Context, clubID, bookID, userID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.clubAuth.ReadAsMember(txCtx, userID, clubID); err != nil {
			return err
		}
		if _, err := s.bookAuth.Read(txCtx, bookID); err != nil {
			return err
		}
		return s.clubRepo.AddBook(txCtx, clubID, bookID)
	})
}

// RemoveBook takes a book off the club's reading list; admin only
func (s *clubService) RemoveBook(ctx context.Context, clubID, bookID, userID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.bookAuth.IsClubAdmin(txCtx, userID, clubID, bookID); err != nil {
			return err
		}
		return s.clubRepo.RemoveBook(txCtx, clubID, bookID)
	})
}

// ListBooks retrieves the club's reading list for a member
func (s *clubService) ListBooks(ctx context.Context, clubID, userID string) ([]models.Book, error) {
	if _, err := s.clubAuth.ReadAsMember(ctx, userID, clubID); err != nil {
		return nil, err
	}
	return s.bookRepo.ListForClub(ctx, clubID)
}

// DeleteClub deletes a club; admin only
func (s *clubService) DeleteClub(ctx context.Context, clubID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.clubAuth.IsAdmin(txCtx, userID, clubID); err != nil {
			return err
		}
		return s.clubRepo.Delete(txCtx, clubID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("club deleted", "id", clubID, "user_id", userID)

	return nil
}

// validateCreateRequest validates a create club request
func (s *clubService) validateCreateRequest(req *services.CreateClubRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxClubNameLength),
			validation.By(validateTrimmedNotEmpty),
		),
	)
}

// validateUpdateRequest validates an update club request
func (s *clubService) validateUpdateRequest(req *services.UpdateClubRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxClubNameLength),
		),
	)
}

// validateTrimmedNotEmpty rejects values that are empty after trimming
func validateTrimmedNotEmpty(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
