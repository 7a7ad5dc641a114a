package authz

import (
	"context"
	"errors"
	"fmt"

	"wellread/internal/domain"
	"wellread/internal/domain/repositories"
)

// UserAuthorizer decides user-level checks. Only one exists today: email
// uniqueness at signup. It is not a runtime authorization gate.
type UserAuthorizer struct {
	userRepo repositories.UserRepository
}

// NewUserAuthorizer creates a new user authorizer
func NewUserAuthorizer(userRepo repositories.UserRepository) *UserAuthorizer {
	return &UserAuthorizer{userRepo: userRepo}
}

// EmailNotInUse fails with a conflict if a user with the email already exists
func (a *UserAuthorizer) EmailNotInUse(ctx context.Context, email string) error {
	existing, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check email in use: %w", err)
	}
	return &domain.ConflictError{
		Message:      "email already registered",
		ResourceType: "user",
		ResourceID:   existing.ID,
	}
}
