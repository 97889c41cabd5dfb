package domain

import "time"

// User is the stored identity record. Handle and display name are
// validated through the bounded constructors before a User is ever
// created; storage hands back plain strings.
type User struct {
	ID           string
	Handle       string
	DisplayName  *string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUserProfile is the read-only projection of User safe for
// external exposure. It never carries password or session material.
type PublicUserProfile struct {
	ID           string    `json:"id"`
	DisplayName  *string   `json:"display_name,omitempty"`
	Handle       string    `json:"handle"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	AmFollowing  bool      `json:"am_following"`
}
