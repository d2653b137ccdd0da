package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/server/models"
	"github.com/dmitrijs2005/contactdesk/internal/server/shared/db"
	"github.com/google/uuid"
)

// Notifier pushes contact changes to connected clients of the owning user.
// Creates are not pushed: the creating client already holds the record and
// other clients pick it up from subsequent updates or a reload.
type Notifier interface {
	ContactUpdated(userID string, contact models.Contact)
	ContactDeleted(userID string, contact models.Contact)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ContactUpdated(userID string, contact models.Contact) {}
func (NopNotifier) ContactDeleted(userID string, contact models.Contact) {}

type ContactService struct {
	repos    db.RepositoryManager
	notifier Notifier
}

func NewContactService(repos db.RepositoryManager, notifier Notifier) *ContactService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ContactService{repos: repos, notifier: notifier}
}

func (s *ContactService) List(ctx context.Context, userID string) ([]models.Contact, error) {
	list, err := s.repos.Contacts().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return list, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.repos.Contacts().GetByID(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, userID, firstName, lastName, email, phoneNumber string) (*models.Contact, error) {
	contact := &models.Contact{
		ID:          uuid.NewString(),
		UserID:      userID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phoneNumber,
	}

	contact, err := s.repos.Contacts().Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}

	return contact, nil
}

// Update replaces the contact's fields, recording one audit entry per field
// that actually changed, then notifies the owner's other clients.
func (s *ContactService) Update(ctx context.Context, id, firstName, lastName, email, phoneNumber string) (*models.Contact, error) {
	current, err := s.repos.Contacts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.Contact{
		ID:          current.ID,
		UserID:      current.UserID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phoneNumber,
	}

	entries := diffContacts(current, updated)

	updated, err = s.repos.Contacts().Update(ctx, updated, entries)
	if err != nil {
		return nil, err
	}

	s.notifier.ContactUpdated(updated.UserID, *updated)

	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	contact, err := s.repos.Contacts().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.Contacts().Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.ContactDeleted(contact.UserID, *contact)

	return nil
}

func (s *ContactService) History(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	entries, err := s.repos.Audit().ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("error loading audit trail: %w", err)
	}
	return entries, nil
}

func diffContacts(prev, next *models.Contact) []models.AuditEntry {
	now := time.Now().UTC()

	var entries []models.AuditEntry
	add := func(field, oldVal, newVal string) {
		if oldVal == newVal {
			return
		}
		entries = append(entries, models.AuditEntry{
			ID:        uuid.NewString(),
			ContactID: prev.ID,
			FieldName: field,
			OldValue:  strPtr(oldVal),
			NewValue:  strPtr(newVal),
			ChangedAt: now,
		})
	}

	add("first_name", prev.FirstName, next.FirstName)
	add("last_name", prev.LastName, next.LastName)
	add("email", prev.Email, next.Email)
	add("phone_number", prev.PhoneNumber, next.PhoneNumber)

	return entries
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
