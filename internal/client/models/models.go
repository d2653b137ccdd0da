// Package models defines the data types exchanged with the ContactDesk
// backend: the authenticated user identity, contact records, and per-field
// audit history. JSON field names follow the server's wire format.
package models

import "time"

// UserIdentity is the authenticated user as issued by the server on login.
// It is an immutable value: replaced wholesale on re-login, never mutated.
type UserIdentity struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Contact is a single contact record. Identity is ID, assigned by the
// server; clients never generate contact ids locally.
type Contact struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// ContactDraft carries the user-entered fields of a contact that does not
// exist yet. The server assigns the id.
type ContactDraft struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// AuditEntry is one per-field change of a contact, read-only.
// OldValue/NewValue are nil when the field had no previous/next value.
type AuditEntry struct {
	ID        string    `json:"id"`
	FieldName string    `json:"field"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// FullName renders "First Last" for user-facing messages.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}
