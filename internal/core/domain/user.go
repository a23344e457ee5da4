package domain

import "time"

// User is an entry of the local user directory.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"` // bcrypt hash, never the plaintext password
}

// Session is the explicit identity handed to layers that need to know who is signed in.
type Session struct {
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issuedAt"`
}

// StorageEvent describes a change of one key in the key-value store.
// An absent value is represented by a nil pointer.
type StorageEvent struct {
	Key      string
	OldValue *string
	NewValue *string
}
