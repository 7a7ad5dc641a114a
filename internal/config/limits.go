package config

// Input length limits enforced by service-layer validation
const (
	// MaxFullNameLength is the maximum length of a user's full name
	MaxFullNameLength = 100

	// MaxClubNameLength is the maximum length of a club name
	MaxClubNameLength = 100

	// MaxNoteContentLength is the maximum length of a note's content
	MaxNoteContentLength = 20000

	// MaxTagNameLength is the maximum length of a tag or club tag name
	MaxTagNameLength = 50
)
