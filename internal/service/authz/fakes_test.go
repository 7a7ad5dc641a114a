package authz

import (
	"context"
	"fmt"

	"wellread/internal/domain"
	"wellread/internal/domain/models"
	"wellread/internal/domain/repositories"
)

// memStore is an in-memory stand-in for the postgres repositories. It
// implements every repository interface so authorizers can be exercised
// against known state.
type memStore struct {
	nextID   int
	users    map[string]*models.User
	clubs    map[string]*models.Club
	books    map[string]*models.Book
	notes    map[string]*models.Note
	tags     map[string]*models.Tag
	clubTags map[string]*models.ClubTag

	members   map[string]map[string]bool // clubID -> userID set
	clubBooks map[string]map[string]bool // clubID -> bookID set
	userBooks map[string]map[string]bool // userID -> bookID set
	follows   map[string]map[string]bool // userID -> followed set
	noteTags  map[string]map[string]bool // noteID -> tagID set
	noteCTags map[string]map[string]bool // noteID -> clubTagID set
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*models.User),
		clubs:     make(map[string]*models.Club),
		books:     make(map[string]*models.Book),
		notes:     make(map[string]*models.Note),
		tags:      make(map[string]*models.Tag),
		clubTags:  make(map[string]*models.ClubTag),
		members:   make(map[string]map[string]bool),
		clubBooks: make(map[string]map[string]bool),
		userBooks: make(map[string]map[string]bool),
		follows:   make(map[string]map[string]bool),
		noteTags:  make(map[string]map[string]bool),
		noteCTags: make(map[string]map[string]bool),
	}
}

func (s *memStore) genID() string {
	s.nextID++
	return fmt.Sprintf("id-%04d", s.nextID)
}

func addTo(m map[string]map[string]bool, key, value string) {
	if m[key] == nil {
		m[key] = make(map[string]bool)
	}
	m[key][value] = true
}

// Test state builders

func (s *memStore) addUser(fullName, email string) *models.User {
	u := &models.User{ID: s.genID(), FullName: fullName, Email: email}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addClub(name, adminID string, memberIDs ...string) *models.Club {
	c := &models.Club{ID: s.genID(), Name: name, AdminUserID: adminID, IsActive: true}
	s.clubs[c.ID] = c
	addTo(s.members, c.ID, adminID)
	for _, m := range memberIDs {
		addTo(s.members, c.ID, m)
	}
	return c
}

func (s *memStore) addBook(title string) *models.Book {
	b := &models.Book{ID: s.genID(), GoogleBooksID: "gb-" + title, Title: title}
	s.books[b.ID] = b
	return b
}

func (s *memStore) addNote(userID, clubID, bookID, content string, private bool) *models.Note {
	n := &models.Note{ID: s.genID(), UserID: userID, ClubID: clubID, BookID: bookID, Content: content, Private: private}
	s.notes[n.ID] = n
	return n
}

func (s *memStore) addTag(clubID, name string) *models.Tag {
	t := &models.Tag{ID: s.genID(), ClubID: clubID, Name: name}
	s.tags[t.ID] = t
	return t
}

func (s *memStore) addClubTag(clubID, bookID, name string) *models.ClubTag {
	ct := &models.ClubTag{ID: s.genID(), ClubID: clubID, BookID: bookID, Name: name}
	s.clubTags[ct.ID] = ct
	return ct
}

// ClubRepository

func (s *memStore) Create(ctx context.Context, club *models.Club) error {
	club.ID = s.genID()
	s.clubs[club.ID] = club
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*models.Club, error) {
	club, ok := s.clubs[id]
	if !ok {
		return nil, fmt.Errorf("club not found: %w", domain.ErrNotFound)
	}
	return club, nil
}

func (s *memStore) GetForMember(ctx context.Context, clubID, userID string) (*models.Club, error) {
	club, ok := s.clubs[clubID]
	if !ok || !s.members[clubID][userID] {
		return nil, fmt.Errorf("club not found: %w", domain.ErrNotFound)
	}
	return club, nil
}

func (s *memStore) ListForMember(ctx context.Context, userID string, activeOnly bool) ([]models.Club, error) {
	var out []models.Club
	for id, club := range s.clubs {
		if !s.members[id][userID] {
			continue
		}
		if activeOnly && !club.IsActive {
			continue
		}
		out = append(out, *club)
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, club *models.Club) error {
	if _, ok := s.clubs[club.ID]; !ok {
		return fmt.Errorf("club not found: %w", domain.ErrNotFound)
	}
	s.clubs[club.ID] = club
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.clubs[id]; !ok {
		return fmt.Errorf("club not found: %w", domain.ErrNotFound)
	}
	delete(s.clubs, id)
	delete(s.members, id)
	return nil
}

func (s *memStore) AddMember(ctx context.Context, clubID, userID string) error {
	if _, ok := s.clubs[clubID]; !ok {
		return fmt.Errorf("club not found: %w", domain.ErrNotFound)
	}
	addTo(s.members, clubID, userID)
	return nil
}

func (s *memStore) RemoveMember(ctx context.Context, clubID, userID string) error {
	delete(s.members[clubID], userID)
	return nil
}

func (s *memStore) AddBook(ctx context.Context, clubID, bookID string) error {
	addTo(s.clubBooks, clubID, bookID)
	return nil
}

func (s *memStore) RemoveBook(ctx context.Context, clubID, bookID string) error {
	delete(s.clubBooks[clubID], bookID)
	return nil
}

// clubRepo, noteRepo, bookRepo, tagRepo, userRepo narrow memStore to one
// interface each where method names collide.

type clubRepo struct{ *memStore }

var _ repositories.ClubRepository = clubRepo{}

type noteRepo struct{ *memStore }

var _ repositories.NoteRepository = noteRepo{}

func (r noteRepo) Create(ctx context.Context, note *models.Note) error {
	note.ID = r.memStore.genID()
	r.notes[note.ID] = note
	return nil
}

func (r noteRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, fmt.Errorf("note not found: %w", domain.ErrNotFound)
	}
	return note, nil
}

func (r noteRepo) ListPersonal(ctx context.Context, userID string, filter repositories.PersonalNoteFilter) ([]models.Note, error) {
	var out []models.Note
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if filter.ClubID != "" && n.ClubID != filter.ClubID {
			continue
		}
		if n.Private && !filter.IncludePrivate {
			continue
		}
		if n.Archived && !filter.IncludeArchived {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r noteRepo) ListForClub(ctx context.Context, filter repositories.ClubNoteFilter) ([]models.Note, error) {
	var out []models.Note
	for _, n := range r.notes {
		if n.ClubID != filter.ClubID || n.Private {
			continue
		}
		if n.Archived && !filter.IncludeArchived {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r noteRepo) Update(ctx context.Context, note *models.Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return fmt.Errorf("note not found: %w", domain.ErrNotFound)
	}
	r.notes[note.ID] = note
	return nil
}

func (r noteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.notes[id]; !ok {
		return fmt.Errorf("note not found: %w", domain.ErrNotFound)
	}
	delete(r.notes, id)
	return nil
}

func (r noteRepo) AddTag(ctx context.Context, noteID, tagID string) error {
	addTo(r.noteTags, noteID, tagID)
	return nil
}

func (r noteRepo) RemoveTag(ctx context.Context, noteID, tagID string) error {
	delete(r.noteTags[noteID], tagID)
	return nil
}

func (r noteRepo) AddClubTag(ctx context.Context, noteID, clubTagID string) error {
	addTo(r.noteCTags, noteID, clubTagID)
	return nil
}

func (r noteRepo) RemoveClubTag(ctx context.Context, noteID, clubTagID string) error {
	delete(r.noteCTags[noteID], clubTagID)
	return nil
}

type bookRepo struct{ *memStore }

var _ repositories.BookRepository = bookRepo{}

func (r bookRepo) Create(ctx context.Context, book *models.Book) error {
	book.ID = r.memStore.genID()
	r.books[book.ID] = book
	return nil
}

func (r bookRepo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, fmt.Errorf("book not found: %w", domain.ErrNotFound)
	}
	return book, nil
}

func (r bookRepo) GetByGoogleBooksID(ctx context.Context, googleBooksID string) (*models.Book, error) {
	for _, b := range r.books {
		if b.GoogleBooksID == googleBooksID {
			return b, nil
		}
	}
	return nil, fmt.Errorf("book not found: %w", domain.ErrNotFound)
}

func (r bookRepo) ListForClub(ctx context.Context, clubID string) ([]models.Book, error) {
	var out []models.Book
	for id := range r.clubBooks[clubID] {
		if b, ok := r.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

// TagRepository

func (s *memStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	tag.ID = s.genID()
	s.tags[tag.ID] = tag
	return nil
}

func (s *memStore) GetTagByID(ctx context.Context, id string) (*models.Tag, error) {
	tag, ok := s.tags[id]
	if !ok {
		return nil, fmt.Errorf("tag not found: %w", domain.ErrNotFound)
	}
	return tag, nil
}

func (s *memStore) ListTagsForClub(ctx context.Context, clubID string, includeArchived bool) ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range s.tags {
		if t.ClubID != clubID {
			continue
		}
		if t.Archived && !includeArchived {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *memStore) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if _, ok := s.tags[tag.ID]; !ok {
		return fmt.Errorf("tag not found: %w", domain.ErrNotFound)
	}
	s.tags[tag.ID] = tag
	return nil
}

func (s *memStore) DeleteTag(ctx context.Context, id string) error {
	if _, ok := s.tags[id]; !ok {
		return fmt.Errorf("tag not found: %w", domain.ErrNotFound)
	}
	delete(s.tags, id)
	return nil
}

func (s *memStore) CreateClubTag(ctx context.Context, clubTag *models.ClubTag) error {
	clubTag.ID = s.genID()
	s.clubTags[clubTag.ID] = clubTag
	return nil
}

func (s *memStore) GetClubTagByID(ctx context.Context, id string) (*models.ClubTag, error) {
	clubTag, ok := s.clubTags[id]
	if !ok {
		return nil, fmt.Errorf("club tag not found: %w", domain.ErrNotFound)
	}
	return clubTag, nil
}

func (s *memStore) ListClubTagsForClub(ctx context.Context, clubID, bookID string, includeArchived bool) ([]models.ClubTag, error) {
	var out []models.ClubTag
	for _, ct := range s.clubTags {
		if ct.ClubID != clubID {
			continue
		}
		if bookID != "" && ct.BookID != bookID {
			continue
		}
		if ct.Archived && !includeArchived {
			continue
		}
		out = append(out, *ct)
	}
	return out, nil
}

func (s *memStore) UpdateClubTag(ctx context.Context, clubTag *models.ClubTag) error {
	if _, ok := s.clubTags[clubTag.ID]; !ok {
		return fmt.Errorf("club tag not found: %w", domain.ErrNotFound)
	}
	s.clubTags[clubTag.ID] = clubTag
	return nil
}

func (s *memStore) DeleteClubTag(ctx context.Context, id string) error {
	if _, ok := s.clubTags[id]; !ok {
		return fmt.Errorf("club tag not found: %w", domain.ErrNotFound)
	}
	delete(s.clubTags, id)
	return nil
}

func (s *memStore) NameInUse(ctx context.Context, clubID, name string) (bool, error) {
	for _, t := range s.tags {
		if t.ClubID == clubID && t.Name == name && !t.Archived {
			return true, nil
		}
	}
	for _, ct := range s.clubTags {
		if ct.ClubID == clubID && ct.Name == name && !ct.Archived {
			return true, nil
		}
	}
	return false, nil
}

type tagRepo struct{ *memStore }

var _ repositories.TagRepository = tagRepo{}

type userRepo struct{ *memStore }

var _ repositories.UserRepository = userRepo{}

func (r userRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "email already registered", ResourceType: "user", ResourceID: u.ID}
		}
	}
	if user.ID == "" {
		user.ID = r.memStore.genID()
	}
	r.users[user.ID] = user
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return user, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
}

func (r userRepo) Follow(ctx context.Context, followerID, followingID string) error {
	if _, ok := r.users[followingID]; !ok {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	addTo(r.follows, followerID, followingID)
	return nil
}

func (r userRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	delete(r.follows[followerID], followingID)
	return nil
}

func (r userRepo) ListFollowing(ctx context.Context, userID string) ([]models.UserFollow, error) {
	var out []models.UserFollow
	for id := range r.follows[userID] {
		if u, ok := r.users[id]; ok {
			out = append(out, models.UserFollow{ID: u.ID, FullName: u.FullName})
		}
	}
	return out, nil
}

func (r userRepo) AddBook(ctx context.Context, userID, bookID string) error {
	addTo(r.userBooks, userID, bookID)
	return nil
}

func (r userRepo) RemoveBook(ctx context.Context, userID, bookID string) error {
	delete(r.userBooks[userID], bookID)
	return nil
}
