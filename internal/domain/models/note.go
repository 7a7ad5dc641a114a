package models

import "time"

// Note is written by one author about a book within a club. Private notes
// are readable only by their author via direct lookup and never appear in
// club-wide listings. Archived is a soft hide, not a deletion.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClubID    string    `json:"club_id"`
	BookID    string    `json:"book_id"`
	Content   string    `json:"content"`
	Private   bool      `json:"private"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}
