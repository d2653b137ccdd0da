// Package api is the typed request/response boundary to the ContactDesk
// backend. It exposes the Client interface consumed by the session
// controller and the contact reconciler, and an HTTP implementation that
// carries the session's bearer token on every request.
package api

import (
	"context"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
)

// Client defines the backend operations used by the CLI.
//
// Contract:
//   - Login/Register: authenticate or create an account; bad credentials
//     map to common.ErrUnauthorized, transport failure to common.ErrUnavailable.
//   - ListContacts: authoritative full list for one user.
//   - CreateContact/UpdateContact/DeleteContact: CRUD legs; the returned
//     contact is the server's canonical version. Update/Delete of an absent
//     record map to common.ErrNotFound.
//   - ContactHistory: read-only per-field audit trail, ordered by change time.
//   - Token/SetToken: read or replace the bearer token attached to
//     requests. Login sets it implicitly; SetToken exists so a restored
//     session can reattach its persisted token, and so logout can detach
//     credentials ("" clears).
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.UserIdentity, error)
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.UserIdentity, error)
	ListContacts(ctx context.Context, userID string) ([]models.Contact, error)
	CreateContact(ctx context.Context, userID string, draft models.ContactDraft) (models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
	ContactHistory(ctx context.Context, contactID string) ([]models.AuditEntry, error)
	Token() string
	SetToken(token string)
	Close() error
}
