package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactdesk/internal/common"
)

// Login prompts for credentials and establishes a session. A successful
// login also opens the live update channel and loads the contact list.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	user, err := a.controller.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			fmt.Fprintln(a.out, "Login unsuccessful: invalid email or password")
		case errors.Is(err, common.ErrUnavailable):
			fmt.Fprintln(a.out, "Login unsuccessful: server unavailable")
		case errors.Is(err, common.ErrAlreadyLoggedIn):
			fmt.Fprintln(a.out, "Already logged in, logout first")
		default:
			fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s %s\n", user.FirstName, user.LastName)
	return nil
}

// Register prompts for account details and creates a new user, then
// suggests logging in.
func (a *App) Register(ctx context.Context) error {
	firstName, err := GetSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.apiClient.Register(ctx, firstName, lastName, email, password); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			fmt.Fprintln(a.out, "Registration unsuccessful: email already taken")
		} else {
			fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Registered, you can login now")
	return nil
}

// Logout tears down the session and the live channel together.
func (a *App) Logout(ctx context.Context) error {
	a.controller.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
