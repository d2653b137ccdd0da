package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/contactdesk/internal/client/api"
	"github.com/dmitrijs2005/contactdesk/internal/client/config"
	"github.com/dmitrijs2005/contactdesk/internal/client/contacts"
	"github.com/dmitrijs2005/contactdesk/internal/client/controller"
	"github.com/dmitrijs2005/contactdesk/internal/client/live"
	"github.com/dmitrijs2005/contactdesk/internal/client/session"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
)

// App glues the CLI together: the session controller, the contact
// reconciler, and the interactive prompt.
type App struct {
	config     *config.Config
	controller *controller.Controller
	contacts   *contacts.Reconciler
	apiClient  api.Client
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp wires the client components from the given configuration.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	store := session.NewFileStore(c.StateDir)
	channel := live.NewWSChannel(c.WebsocketURL, logger)
	rec := contacts.NewReconciler(apiClient, logger)
	ctrl := controller.New(apiClient, store, channel, rec, logger)

	a := &App{
		config:     c,
		controller: ctrl,
		contacts:   rec,
		apiClient:  apiClient,
		logger:     logger,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}

	// Surface push notifications from other devices as they arrive,
	// the way the web client shows toasts.
	ctrl.SetNotify(func(ev live.Event) {
		switch ev.Kind {
		case live.EventContactUpdated:
			fmt.Fprintf(a.out, "\n* contact updated: %s\n", ev.Contact.FullName())
		case live.EventContactDeleted:
			fmt.Fprintf(a.out, "\n* contact deleted: %s\n", ev.Contact.FullName())
		}
	})

	return a, nil
}

// Run restores any persisted session and starts the REPL; it blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()

	if user, err := a.controller.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	} else if user != nil {
		fmt.Fprintf(a.out, "Welcome back, %s %s\n", user.FirstName, user.LastName)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt suffix: the logged-in user's email or "-".
func (a *App) status() string {
	s := a.controller.Session()
	if !s.IsAuthenticated {
		return "-"
	}
	return s.User.Email
}

func (a *App) isLoggedIn() bool {
	return a.controller.Session().IsAuthenticated
}
