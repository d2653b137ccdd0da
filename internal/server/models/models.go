// Package models defines the server-side database entities.
package models

import "time"

// User is an account that owns contacts. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// Contact is one contact record owned by a user.
type Contact struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// AuditEntry records one per-field change of a contact. OldValue/NewValue
// are nil when the field had no previous/next value.
type AuditEntry struct {
	ID        string
	ContactID string
	FieldName string
	OldValue  *string
	NewValue  *string
	ChangedAt time.Time
}
