package authz

import (
	"context"
	"errors"
	"testing"

	"wellread/internal/domain"
)

func TestUserAuthorizer_EmailNotInUse(t *testing.T) {
	store := newMemStore()
	existing := store.addUser("Existing", "taken@example.com")

	authz := NewUserAuthorizer(userRepo{store})
	ctx := context.Background()

	if err := authz.EmailNotInUse(ctx, "fresh@example.com"); err != nil {
		t.Errorf("EmailNotInUse() with fresh email: %v", err)
	}

	var conflict *domain.ConflictError
	err := authz.EmailNotInUse(ctx, "taken@example.com")
	if !errors.As(err, &conflict) {
		t.Fatalf("EmailNotInUse() with taken email = %v, want ConflictError", err)
	}
	if conflict.ResourceID != existing.ID {
		t.Errorf("conflict resource ID = %s, want %s", conflict.ResourceID, existing.ID)
	}
}
