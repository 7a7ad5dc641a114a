package models

import "time"

// Club is a reading group. Exactly one admin, set at creation and immutable
// thereafter. The admin is always a member; membership is otherwise granted
// by joining. IsActive is a listing filter, not an access gate.
type Club struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AdminUserID   string    `json:"admin_user_id"`
	CurrentBookID *string   `json:"current_book_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
