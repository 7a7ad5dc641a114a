// Package seed loads development fixtures from YAML and applies them
// through the service layer, so seeded data obeys the same membership and
// uniqueness rules as data created through the API.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UserFixture declares a user. Key is how other fixtures refer to it.
type UserFixture struct {
	Key      string `yaml:"key"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
}

// BookFixture declares a catalog book
type BookFixture struct {
	Key           string `yaml:"key"`
	GoogleBooksID string `yaml:"google_books_id"`
	Title         string `yaml:"title"`
	AuthorName    string `yaml:"author_name"`
}

// ClubFixture declares a club, its admin, members, and reading list
type ClubFixture struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Admin       string   `yaml:"admin"`
	Members     []string `yaml:"members"`
	Books       []string `yaml:"books"`
	CurrentBook string   `yaml:"current_book"`
}

// TagFixture declares a club-scoped tag, created by the club admin
type TagFixture struct {
	Club string `yaml:"club"`
	Name string `yaml:"name"`
}

// ClubTagFixture declares a club tag pinned to a book
type ClubTagFixture struct {
	Club string `yaml:"club"`
	Book string `yaml:"book"`
	Name string `yaml:"name"`
}

// NoteFixture declares a note, optionally tagged
type NoteFixture struct {
	Author   string   `yaml:"author"`
	Club     string   `yaml:"club"`
	Book     string   `yaml:"book"`
	Content  string   `yaml:"content"`
	Private  bool     `yaml:"private"`
	Tags     []string `yaml:"tags"`
	ClubTags []string `yaml:"club_tags"`
}

// Fixtures is the root of a fixtures YAML document
type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Books    []BookFixture    `yaml:"books"`
	Clubs    []ClubFixture    `yaml:"clubs"`
	Tags     []TagFixture     `yaml:"tags"`
	ClubTags []ClubTagFixture `yaml:"club_tags"`
	Notes    []NoteFixture    `yaml:"notes"`
}

// Load reads and parses a fixtures file
func Load(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// validate checks that every cross-reference resolves to a declared fixture
func (fx *Fixtures) validate() error {
	users := make(map[string]struct{}, len(fx.Users))
	for _, u := range fx.Users {
		if u.Key == "" {
			return fmt.Errorf("user fixture %q missing key", u.Email)
		}
		users[u.Key] = struct{}{}
	}

	books := make(map[string]struct{}, len(fx.Books))
	for _, b := range fx.Books {
		if b.Key == "" {
			return fmt.Errorf("book fixture %q missing key", b.Title)
		}
		books[b.Key] = struct{}{}
	}

	clubs := make(map[string]struct{}, len(fx.Clubs))
	for _, c := range fx.Clubs {
		if c.Key == "" {
			return fmt.Errorf("club fixture %q missing key", c.Name)
		}
		clubs[c.Key] = struct{}{}
		if _, ok := users[c.Admin]; !ok {
			return fmt.Errorf("club %q: unknown admin %q", c.Key, c.Admin)
		}
		for _, m := range c.Members {
			if _, ok := users[m]; !ok {
				return fmt.Errorf("club %q: unknown member %q", c.Key, m)
			}
		}
		for _, b := range c.Books {
			if _, ok := books[b]; !ok {
				return fmt.Errorf("club %q: unknown book %q", c.Key, b)
			}
		}
		if c.CurrentBook != "" {
			if _, ok := books[c.CurrentBook]; !ok {
				return fmt.Errorf("club %q: unknown current book %q", c.Key, c.CurrentBook)
			}
		}
	}

	for _, t := range fx.Tags {
		if _, ok := clubs[t.Club]; !ok {
			return fmt.Errorf("tag %q: unknown club %q", t.Name, t.Club)
		}
	}
	for _, ct := range fx.ClubTags {
		if _, ok := clubs[ct.Club]; !ok {
			return fmt.Errorf("club tag %q: unknown club %q", ct.Name, ct.Club)
		}
		if _, ok := books[ct.Book]; !ok {
			return fmt.Errorf("club tag %q: unknown book %q", ct.Name, ct.Book)
		}
	}
	for i, n := range fx.Notes {
		if _, ok := users[n.Author]; !ok {
			return fmt.Errorf("note %d: unknown author %q", i, n.Author)
		}
		if _, ok := clubs[n.Club]; !ok {
			return fmt.Errorf("note %d: unknown club %q", i, n.Club)
		}
		if _, ok := books[n.Book]; !ok {
			return fmt.Errorf("note %d: unknown book %q", i, n.Book)
		}
	}

	return nil
}
