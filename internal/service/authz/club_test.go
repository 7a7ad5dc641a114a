package authz

import (
	"context"
	"errors"
	"testing"

	"wellread/internal/domain"
)

func TestClubAuthorizer_ReadAsMember(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	member := store.addUser("Member", "member@example.com")
	outsider := store.addUser("Outsider", "outsider@example.com")
	club := store.addClub("Fiction", admin.ID, member.ID)

	authz := NewClubAuthorizer(clubRepo{store}, tagRepo{store})
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		clubID  string
		wantErr error
	}{
		{"admin is a member", admin.ID, club.ID, nil},
		{"plain member", member.ID, club.ID, nil},
		{"non-member gets not found", outsider.ID, club.ID, domain.ErrNotFound},
		{"missing club gets not found", member.ID, "id-9999", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.ReadAsMember(ctx, tt.userID, tt.clubID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadAsMember() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAsMember() unexpected error: %v", err)
			}
			if got.ID != tt.clubID {
				t.Errorf("ReadAsMember() club ID = %s, want %s", got.ID, tt.clubID)
			}
		})
	}
}

func TestClubAuthorizer_IsAdmin(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	member := store.addUser("Member", "member@example.com")
	outsider := store.addUser("Outsider", "outsider@example.com")
	club := store.addClub("Fiction", admin.ID, member.ID)

	authz := NewClubAuthorizer(clubRepo{store}, tagRepo{store})
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"admin passes", admin.ID, nil},
		{"member but not admin gets forbidden", member.ID, domain.ErrForbidden},
		{"non-member gets not found, not forbidden", outsider.ID, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authz.IsAdmin(ctx, tt.userID, club.ID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("IsAdmin() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("IsAdmin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClubAuthorizer_IsInvited(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	club := store.addClub("Fiction", admin.ID)

	authz := NewClubAuthorizer(clubRepo{store}, tagRepo{store})
	ctx := context.Background()

	// Any existing club is open for joining
	if _, err := authz.IsInvited(ctx, club.ID); err != nil {
		t.Errorf("IsInvited() on existing club: %v", err)
	}

	if _, err := authz.IsInvited(ctx, "id-9999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("IsInvited() on missing club = %v, want ErrNotFound", err)
	}
}

func TestClubAuthorizer_NoDuplicateTagName(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	outsider := store.addUser("Outsider", "outsider@example.com")
	club := store.addClub("Fiction", admin.ID)
	other := store.addClub("History", admin.ID)

	store.addTag(club.ID, "favorites")
	store.addClubTag(club.ID, store.addBook("Piranesi").ID, "week-1")
	archived := store.addTag(club.ID, "old")
	archived.Archived = true

	authz := NewClubAuthorizer(clubRepo{store}, tagRepo{store})
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       string
		clubID       string
		tagName      string
		wantConflict bool
		wantErr      error
	}{
		{"fresh name passes", admin.ID, club.ID, "questions", false, nil},
		{"duplicate tag name conflicts", admin.ID, club.ID, "favorites", true, nil},
		{"duplicate club tag name conflicts", admin.ID, club.ID, "week-1", true, nil},
		{"archived tag name is reusable", admin.ID, club.ID, "old", false, nil},
		{"same name in another club passes", admin.ID, other.ID, "favorites", false, nil},
		{"non-member gets not found", outsider.ID, club.ID, "questions", false, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.NoDuplicateTagName(ctx, tt.userID, tt.clubID, tt.tagName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NoDuplicateTagName() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			var conflict *domain.ConflictError
			gotConflict := errors.As(err, &conflict)
			if gotConflict != tt.wantConflict {
				t.Fatalf("NoDuplicateTagName() conflict = %v (err %v), want %v", gotConflict, err, tt.wantConflict)
			}
			if !tt.wantConflict && err != nil {
				t.Fatalf("NoDuplicateTagName() unexpected error: %v", err)
			}
		})
	}
}
