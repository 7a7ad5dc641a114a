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
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// userService implements the UserService interface
type userService struct {
	userRepo  repositories.UserRepository
	userAuth  *authz.UserAuthorizer
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	userAuth *authz.UserAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo:  userRepo,
		userAuth:  userAuth,
		txManager: txManager,
		logger:    logger,
	}
}

// Register creates the profile row for an authenticated subject
func (s *userService) Register(ctx context.Context, req *services.RegisterUserRequest) (*models.User, error) {
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user := &models.User{
		ID:       req.UserID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.userAuth.EmailNotInUse(txCtx, user.Email); err != nil {
			return err
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "email", user.Email)

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Follow makes followerID follow followingID. Following a user twice is a
// no-op; following yourself is rejected.
func (s *userService) Follow(ctx context.Context, followerID, followingID string) (*models.UserFollow, error) {
	if followerID == followingID {
		return nil, fmt.Errorf("%w: cannot follow yourself", domain.ErrValidation)
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Follow(ctx, followerID, followingID); err != nil {
		return nil, err
	}

	s.logger.Info("user followed", "follower_id", followerID, "following_id", followingID)

	return &models.UserFollow{ID: target.ID, FullName: target.FullName}, nil
}

// Unfollow removes the follow relation; a no-op if absent
func (s *userService) Unfollow(ctx context.Context, followerID, followingID string) (*models.UserFollow, error) {
	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Unfollow(ctx, followerID, followingID); err != nil {
		return nil, err
	}

	s.logger.Info("user unfollowed", "follower_id", followerID, "following_id", followingID)

	return &models.UserFollow{ID: target.ID, FullName: target.FullName}, nil
}

// ListFollowing retrieves the users the caller follows
func (s *userService) ListFollowing(ctx context.Context, userID string) ([]models.UserFollow, error) {
	return s.userRepo.ListFollowing(ctx, userID)
}

// validateRegisterRequest validates a signup request
func (s *userService) validateRegisterRequest(req *services.RegisterUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.FullName,
			validation.Required,
			validation.Length(1, config.MaxFullNameLength),
			validation.By(validateTrimmedNotEmpty),
		),
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}
