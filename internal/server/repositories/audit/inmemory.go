package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/contactdesk/internal/server/models"
)

// InMemoryRepository keeps audit entries in a slice per contact.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]models.AuditEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[string][]models.AuditEntry)}
}

func (r *InMemoryRepository) Record(ctx context.Context, entries []models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		r.entries[e.ContactID] = append(r.entries[e.ContactID], e)
	}
	return nil
}

func (r *InMemoryRepository) ListByContact(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]models.AuditEntry(nil), r.entries[contactID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangedAt.Before(out[j].ChangedAt)
	})
	return out, nil
}
