package models

import "time"

// Tag is scoped to a club. Names are unique per club among non-archived
// tags. Any member may read and create; only the club admin may update or
// delete.
type Tag struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	Name      string    `json:"name"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// ClubTag is a club-curated tag pinned to a specific book, managed by the
// club admin only.
type ClubTag struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	BookID    string    `json:"book_id"`
	Name      string    `json:"name"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}
