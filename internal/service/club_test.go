package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"wellread/internal/domain"
	"wellread/internal/domain/services"
	"wellread/internal/service/authz"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClubService(store *memStore) services.ClubService {
	clubAuth := authz.NewClubAuthorizer(clubRepo{store}, tagRepo{store})
	bookAuth := authz.NewBookAuthorizer(bookRepo{store}, clubAuth)
	return NewClubService(clubRepo{store}, bookRepo{store}, clubAuth, bookAuth, passTx{}, testLogger())
}

func TestClubService_CreateClub(t *testing.T) {
	store := newMemStore()
	creator := store.addUser("Creator", "creator@example.com")
	svc := newClubService(store)
	ctx := context.Background()

	club, err := svc.CreateClub(ctx, &services.CreateClubRequest{
		UserID: creator.ID,
		Name:   "  Thursday Fiction Circle  ",
	})
	if err != nil {
		t.Fatalf("CreateClub() error: %v", err)
	}

	if club.Name != "Thursday Fiction Circle" {
		t.Errorf("club name = %q, want trimmed name", club.Name)
	}
	if club.AdminUserID != creator.ID {
		t.Errorf("admin = %s, want creator %s", club.AdminUserID, creator.ID)
	}
	if !club.IsActive {
		t.Error("new club should be active")
	}
	if !store.members[club.ID][creator.ID] {
		t.Error("creator should be a member of the new club")
	}
}

func TestClubService_CreateClub_Validation(t *testing.T) {
	store := newMemStore()
	creator := store.addUser("Creator", "creator@example.com")
	svc := newClubService(store)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.CreateClubRequest
	}{
		{"empty name", &services.CreateClubRequest{UserID: creator.ID, Name: ""}},
		{"whitespace name", &services.CreateClubRequest{UserID: creator.ID, Name: "   "}},
		{"missing user", &services.CreateClubRequest{Name: "Fiction"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateClub(ctx, tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateClub() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestClubService_JoinAndLeave(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	joiner := store.addUser("Joiner", "joiner@example.com")
	club := store.addClub("Fiction", admin.ID)

	svc := newClubService(store)
	ctx := context.Background()

	if _, err := svc.JoinClub(ctx, club.ID, joiner.ID); err != nil {
		t.Fatalf("JoinClub() error: %v", err)
	}
	if !store.members[club.ID][joiner.ID] {
		t.Fatal("joiner should be a member after joining")
	}

	if err := svc.LeaveClub(ctx, club.ID, joiner.ID); err != nil {
		t.Fatalf("LeaveClub() error: %v", err)
	}
	if store.members[club.ID][joiner.ID] {
		t.Error("joiner should not be a member after leaving")
	}
}

func TestClubService_LeaveClub_AdminCannotLeave(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	club := store.addClub("Fiction", admin.ID)

	svc := newClubService(store)

	err := svc.LeaveClub(context.Background(), club.ID, admin.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("LeaveClub() by admin error = %v, want ErrValidation", err)
	}
	if !store.members[club.ID][admin.ID] {
		t.Error("admin must remain a member after a rejected leave")
	}
}

func TestClubService_UpdateClub_MemberForbidden(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	member := store.addUser("Member", "member@example.com")
	club := store.addClub("Fiction", admin.ID, member.ID)

	svc := newClubService(store)
	ctx := context.Background()

	name := "Renamed"
	if _, err := svc.UpdateClub(ctx, club.ID, member.ID, &services.UpdateClubRequest{Name: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("UpdateClub() by member error = %v, want ErrForbidden", err)
	}

	updated, err := svc.UpdateClub(ctx, club.ID, admin.ID, &services.UpdateClubRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateClub() by admin error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("club name = %q, want %q", updated.Name, "Renamed")
	}
}

func TestClubService_RemoveBook_AdminOnly(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("Admin", "admin@example.com")
	member := store.addUser("Member", "member@example.com")
	club := store.addClub("Fiction", admin.ID, member.ID)
	book := store.addBook("Piranesi")

	svc := newClubService(store)
	ctx := context.Background()

	// Any member may add
	if err := svc.AddBook(ctx, club.ID, book.ID, member.ID); err != nil {
		t.Fatalf("AddBook() by member error: %v", err)
	}

	if err := svc.RemoveBook(ctx, club.ID, book.ID, member.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("RemoveBook() by member error = %v, want ErrForbidden", err)
	}
	if err := svc.RemoveBook(ctx, club.ID, book.ID, admin.ID); err != nil {
		t.Errorf("RemoveBook() by admin error: %v", err)
	}
}
