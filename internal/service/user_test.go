package service

import (
	"context"
	"errors"
	"testing"

	"wellread/internal/domain"
	"wellread/internal/domain/services"
	"wellread/internal/service/authz"
)

func newUserService(store *memStore) services.UserService {
	userAuth := authz.NewUserAuthorizer(userRepo{store})
	return NewUserService(userRepo{store}, userAuth, passTx{}, testLogger())
}

func TestUserService_Register(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, &services.RegisterUserRequest{
		UserID:   "subject-1",
		FullName: "Maya Lindqvist",
		Email:    "Maya@Example.COM",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.ID != "subject-1" {
		t.Errorf("user ID = %s, want the authenticated subject", user.ID)
	}
	if user.Email != "maya@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}

	var conflict *domain.ConflictError
	_, err = svc.Register(ctx, &services.RegisterUserRequest{
		UserID:   "subject-2",
		FullName: "Other",
		Email:    "maya@example.com",
	})
	if !errors.As(err, &conflict) {
		t.Errorf("Register() with taken email error = %v, want ConflictError", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.RegisterUserRequest
	}{
		{"missing name", &services.RegisterUserRequest{UserID: "s", Email: "a@example.com"}},
		{"bad email", &services.RegisterUserRequest{UserID: "s", FullName: "A", Email: "not-an-email"}},
		{"missing subject", &services.RegisterUserRequest{FullName: "A", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUserService_Follow(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")

	svc := newUserService(store)
	ctx := context.Background()

	followed, err := svc.Follow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Follow() error: %v", err)
	}
	if followed.ID != bob.ID || followed.FullName != "Bob" {
		t.Errorf("Follow() returned %+v, want bob", followed)
	}

	// Idempotent: a second follow is a no-op
	if _, err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Errorf("repeat Follow() error: %v", err)
	}

	if _, err := svc.Follow(ctx, alice.ID, alice.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self Follow() error = %v, want ErrValidation", err)
	}
	if _, err := svc.Follow(ctx, alice.ID, "id-9999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Follow() unknown user error = %v, want ErrNotFound", err)
	}

	following, err := svc.ListFollowing(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFollowing() error: %v", err)
	}
	if len(following) != 1 {
		t.Errorf("ListFollowing() = %d entries, want 1", len(following))
	}

	if _, err := svc.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Unfollow() error: %v", err)
	}
	// Unfollowing again is a no-op
	if _, err := svc.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Errorf("repeat Unfollow() error: %v", err)
	}
}
