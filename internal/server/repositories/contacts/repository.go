// Package contacts stores contact records and, atomically with each
// update, the per-field audit rows describing the change.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactdesk/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Contact, error)
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	// Update replaces the stored contact and records the given audit
	// entries in the same transaction. Returns common.ErrNotFound when the
	// contact does not exist.
	Update(ctx context.Context, contact *models.Contact, audit []models.AuditEntry) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}
