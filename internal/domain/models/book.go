package models

import "time"

// Book is a shared catalog record. Books carry no access control of their
// own; visibility follows from club and user association.
type Book struct {
	ID            string    `json:"id"`
	GoogleBooksID string    `json:"google_books_id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"author_name"`
	CreatedAt     time.Time `json:"created_at"`
}
