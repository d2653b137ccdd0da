// Package contacts implements the contact reconciler: the single in-memory
// contact list, kept consistent by funneling both direct CRUD results and
// inbound push events through the same idempotent apply operations.
package contacts

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/contactdesk/internal/client/api"
	"github.com/dmitrijs2005/contactdesk/internal/client/live"
	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
)

// Origin tags where a mutation came from, so the reconciler can apply the
// right miss policy: a push update may race ahead of the initial fetch and
// is accepted as a create, while a CRUD update against an unknown id is an
// error.
type Origin int

const (
	OriginLocal Origin = iota // direct CRUD response
	OriginRemote              // push event
)

// Reconciler owns the ordered, id-unique contact list. All mutations are
// serialized by an internal mutex, and every mutation is validated against
// the owning user id so a late-resolving operation from a previous session
// can never corrupt the list of the current one.
type Reconciler struct {
	api    api.Client
	logger logging.Logger

	mu     sync.Mutex
	userID string
	list   []models.Contact
}

// NewReconciler returns an empty reconciler bound to the given API client.
func NewReconciler(apiClient api.Client, logger logging.Logger) *Reconciler {
	return &Reconciler{api: apiClient, logger: logger}
}

// LoadInitial fetches the authoritative full list for userID and replaces
// the local list wholesale. It also (re)keys the reconciler to userID:
// mutations issued for any other user are rejected from here on.
func (r *Reconciler) LoadInitial(ctx context.Context, userID string) error {
	contacts, err := r.api.ListContacts(ctx, userID)
	if err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.userID = userID
	r.list = append([]models.Contact(nil), contacts...)
	return nil
}

// Reset drops the list and the owning user. Called on logout.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userID = ""
	r.list = nil
}

// Contacts returns a copy of the current list in its stable order:
// initial-fetch order, updates in place, creations appended.
func (r *Reconciler) Contacts() []models.Contact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Contact(nil), r.list...)
}

// ApplyCreate appends a contact. A duplicate id means the server echoed a
// record we already hold; the operation is dropped and reported.
func (r *Reconciler) ApplyCreate(userID string, contact models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(userID); err != nil {
		return err
	}
	if r.indexOf(contact.ID) >= 0 {
		return fmt.Errorf("%w: %s", common.ErrDuplicateID, contact.ID)
	}
	r.list = append(r.list, contact)
	return nil
}

// ApplyUpdate replaces the entry with a matching id in place. When the id
// is absent, a push-originated update is accepted as a create (push may
// race ahead of the initial fetch); a CRUD-originated one is an error.
func (r *Reconciler) ApplyUpdate(userID string, origin Origin, contact models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(userID); err != nil {
		return err
	}

	if i := r.indexOf(contact.ID); i >= 0 {
		r.list[i] = contact
		return nil
	}

	if origin == OriginRemote {
		r.list = append(r.list, contact)
		return nil
	}
	return fmt.Errorf("%w: contact %s", common.ErrNotFound, contact.ID)
}

// ApplyDelete removes the entry with a matching id. Absence is a benign
// no-op: a local delete and its echoed push event may both arrive.
func (r *Reconciler) ApplyDelete(userID, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.guard(userID); err != nil {
		return err
	}

	if i := r.indexOf(contactID); i >= 0 {
		r.list = append(r.list[:i], r.list[i+1:]...)
	}
	return nil
}

// guard is the stale-response check: a resolving operation must still
// belong to the current user. Callers hold r.mu.
func (r *Reconciler) guard(userID string) error {
	if userID == "" || userID != r.userID {
		return fmt.Errorf("%w: user %q", common.ErrStaleMutation, userID)
	}
	return nil
}

// indexOf returns the position of id in the list, or -1. Callers hold r.mu.
func (r *Reconciler) indexOf(id string) int {
	for i := range r.list {
		if r.list[i].ID == id {
			return i
		}
	}
	return -1
}

// Create performs the CRUD leg and folds the server's canonical contact
// into the list. The owning user is captured before the network call so a
// logout during the request makes the result stale instead of corrupting
// the next session's list.
func (r *Reconciler) Create(ctx context.Context, draft models.ContactDraft) (models.Contact, error) {
	userID := r.currentUser()
	if userID == "" {
		return models.Contact{}, common.ErrNotLoggedIn
	}

	created, err := r.api.CreateContact(ctx, userID, draft)
	if err != nil {
		return models.Contact{}, err
	}

	if err := r.ApplyCreate(userID, created); err != nil {
		r.logger.Warn(ctx, "dropping create result", "contact", created.ID, "error", err)
	}
	return created, nil
}

// Update performs the CRUD leg and applies the result as a local-origin
// update.
func (r *Reconciler) Update(ctx context.Context, contact models.Contact) (models.Contact, error) {
	userID := r.currentUser()
	if userID == "" {
		return models.Contact{}, common.ErrNotLoggedIn
	}

	updated, err := r.api.UpdateContact(ctx, contact)
	if err != nil {
		return models.Contact{}, err
	}

	if err := r.ApplyUpdate(userID, OriginLocal, updated); err != nil {
		r.logger.Warn(ctx, "dropping update result", "contact", updated.ID, "error", err)
	}
	return updated, nil
}

// Delete performs the CRUD leg and removes the entry locally.
func (r *Reconciler) Delete(ctx context.Context, contactID string) error {
	userID := r.currentUser()
	if userID == "" {
		return common.ErrNotLoggedIn
	}

	if err := r.api.DeleteContact(ctx, contactID); err != nil {
		return err
	}

	if err := r.ApplyDelete(userID, contactID); err != nil {
		r.logger.Warn(ctx, "dropping delete result", "contact", contactID, "error", err)
	}
	return nil
}

// History fetches the per-field edit trail of one contact. Pure read: it
// never touches the list.
func (r *Reconciler) History(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	return r.api.ContactHistory(ctx, contactID)
}

// Run drains push events in arrival order and applies them as
// remote-origin mutations until the stream or the context ends. Invariant
// violations are logged and the offending event dropped.
func (r *Reconciler) Run(ctx context.Context, userID string, events <-chan live.Event, notify func(live.Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			var err error
			switch ev.Kind {
			case live.EventContactUpdated:
				err = r.ApplyUpdate(userID, OriginRemote, ev.Contact)
			case live.EventContactDeleted:
				err = r.ApplyDelete(userID, ev.Contact.ID)
			}
			if err != nil {
				r.logger.Warn(ctx, "dropping push event", "kind", string(ev.Kind), "contact", ev.Contact.ID, "error", err)
				continue
			}
			if notify != nil {
				notify(ev)
			}
		}
	}
}

func (r *Reconciler) currentUser() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userID
}
