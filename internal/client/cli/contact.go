package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
)

// Add prompts for the contact fields and creates the record on the server.
func (a *App) Add(ctx context.Context) error {
	var draft models.ContactDraft
	var err error

	if draft.FirstName, err = GetSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if draft.LastName, err = GetSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if draft.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if draft.PhoneNumber, err = GetSimpleText(a.reader, "Phone number", a.out); err != nil {
		return err
	}

	created, err := a.contacts.Create(ctx, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to add contact: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%s)\n", created.FullName(), created.ID)
	return nil
}

// Edit prompts for a contact id and new field values (Enter keeps the
// current value), then updates the record on the server.
func (a *App) Edit(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Contact id", a.out)
	if err != nil {
		return err
	}

	var current *models.Contact
	for _, c := range a.contacts.Contacts() {
		if c.ID == id {
			current = &c
			break
		}
	}
	if current == nil {
		fmt.Fprintln(a.out, "No such contact")
		return common.ErrNotFound
	}

	updated := *current
	if updated.FirstName, err = GetOptionalText(a.reader, "First name", current.FirstName, a.out); err != nil {
		return err
	}
	if updated.LastName, err = GetOptionalText(a.reader, "Last name", current.LastName, a.out); err != nil {
		return err
	}
	if updated.Email, err = GetOptionalText(a.reader, "Email", current.Email, a.out); err != nil {
		return err
	}
	if updated.PhoneNumber, err = GetOptionalText(a.reader, "Phone number", current.PhoneNumber, a.out); err != nil {
		return err
	}

	saved, err := a.contacts.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Contact no longer exists on the server")
		} else {
			fmt.Fprintf(a.out, "Failed to update contact: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Updated %s\n", saved.FullName())
	return nil
}

// Delete prompts for a contact id and removes the record.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Contact id", a.out)
	if err != nil {
		return err
	}

	if err := a.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Contact no longer exists on the server")
		} else {
			fmt.Fprintf(a.out, "Failed to delete contact: %v\n", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// History prints the per-field edit trail of one contact, oldest first.
func (a *App) History(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Contact id", a.out)
	if err != nil {
		return err
	}

	entries, err := a.contacts.History(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to fetch history: %v\n", err)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No changes recorded")
		return nil
	}

	for _, e := range entries {
		oldVal, newVal := "n/a", "n/a"
		if e.OldValue != nil {
			oldVal = *e.OldValue
		}
		if e.NewValue != nil {
			newVal = *e.NewValue
		}
		fmt.Fprintf(a.out, "%s  %-14s %q -> %q\n", e.ChangedAt.Format("2006-01-02 15:04:05"), e.FieldName, oldVal, newVal)
	}
	return nil
}
