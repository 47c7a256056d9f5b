// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Inkwell application.
//
// Password holds the bcrypt hash of the account password. The persisted
// roster includes it; session copies are redacted (see Redacted).
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Redacted returns a copy of the user with the password hash stripped.
// The session snapshot persisted under the currentUser key must never
// contain a password field.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

// Identity is the author identity attached to content writes. It is always
// resolved from the authenticated session, never taken from request payloads.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Identity returns the user's author identity.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}
