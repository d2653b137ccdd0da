// Package audit stores the per-field change history of contacts.
package audit

import (
	"context"

	"github.com/dmitrijs2005/contactdesk/internal/server/models"
)

type Repository interface {
	Record(ctx context.Context, entries []models.AuditEntry) error
	// ListByContact returns the trail ordered by change time ascending.
	ListByContact(ctx context.Context, contactID string) ([]models.AuditEntry, error)
}
