package contacts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/server/models"
	"github.com/dmitrijs2005/contactdesk/internal/server/repositories/audit"
)

// InMemoryRepository keeps contacts in insertion order per user. Audit
// entries from updates are recorded into the paired audit repository under
// the same lock, mirroring the transactional Postgres behavior.
type InMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Contact
	audit audit.Repository
}

func NewInMemoryRepository(auditRepo audit.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		byID:  make(map[string]models.Contact),
		audit: auditRepo,
	}
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Contact
	for _, id := range r.order {
		if c, ok := r.byID[id]; ok && c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &c, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[contact.ID]; ok {
		return nil, common.ErrAlreadyExists
	}
	r.byID[contact.ID] = *contact
	r.order = append(r.order, contact.ID)
	return contact, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, contact *models.Contact, entries []models.AuditEntry) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[contact.ID]; !ok {
		return nil, common.ErrNotFound
	}
	r.byID[contact.ID] = *contact

	if err := r.audit.Record(ctx, entries); err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
