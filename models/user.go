package models

import "time"

// User represents an account entity used for authentication and
// authorization. The sync engine treats the user id as the single-flight
// key: at most one sync cycle runs per user at any time.
type User struct {
	// UserID is the internal unique identifier of the user. Not exposed via
	// JSON; used only at the persistence layer and in JWT subjects.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Password carries the plaintext password only on register/login
	// requests. Never persisted.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored server-side. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
