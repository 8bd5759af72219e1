// Package model defines the data structures used throughout the application.
package model

// User represents an account that owns pastes.
//
// Users are read-only in this API: they are seeded at startup and can be listed
// or fetched, but never created, changed or removed over HTTP. Pastes refer to
// users by UserID without any referential check.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`
}
