package cli

import (
	"context"
	"fmt"
)

// List prints the in-memory contact list in its stable order.
func (a *App) List(ctx context.Context) error {
	list := a.contacts.Contacts()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No contacts")
		return nil
	}

	for _, c := range list {
		fmt.Fprintf(a.out, "%s  %-20s %-25s %s\n", c.ID, c.FullName(), c.Email, c.PhoneNumber)
	}
	return nil
}
