package models

import "time"

// User is the identity slice of the platform user the core needs. Profile
// lifecycle is owned elsewhere; this service only references users by id.
type User struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is a user annotated with the primary role name, as returned by
// search and accepted-connection listings.
type UserSummary struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Role string `db:"role" json:"role"`
}
