package models

import "time"

// User is an account in the system. Authentication happens upstream;
// the record here carries identity and social relations only.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFollow is the trimmed representation returned by follow/unfollow
// operations and follower listings.
type UserFollow struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
