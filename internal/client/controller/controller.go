// Package controller owns the session lifecycle: login, logout, and
// startup restore. It is the only component that opens or closes the live
// update channel, and it keeps the pairing invariant: a channel is open if
// and only if the session is authenticated with a non-empty user id.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/contactdesk/internal/client/api"
	"github.com/dmitrijs2005/contactdesk/internal/client/contacts"
	"github.com/dmitrijs2005/contactdesk/internal/client/live"
	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/client/session"
	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
)

// Controller orchestrates the session store, the live channel, and the
// reconciler as one unit.
type Controller struct {
	api     api.Client
	store   session.Store
	channel live.Channel
	rec     *contacts.Reconciler
	logger  logging.Logger

	// notify, when set, is invoked for every push event applied by the
	// reconciler. The CLI uses it to surface change notifications.
	notify func(live.Event)

	// mu guards sess and gen. It is never held across network legs; the
	// generation counter increments on every logout so a login that was in
	// flight can detect the race afterwards and discard its side effects.
	mu   sync.Mutex
	sess session.Session
	gen  uint64
}

// New returns a logged-out controller.
func New(apiClient api.Client, store session.Store, channel live.Channel, rec *contacts.Reconciler, logger logging.Logger) *Controller {
	return &Controller{
		api:     apiClient,
		store:   store,
		channel: channel,
		rec:     rec,
		logger:  logger,
	}
}

// SetNotify registers a callback for applied push events. Call before Login.
func (c *Controller) SetNotify(fn func(live.Event)) {
	c.notify = fn
}

// Session returns the current session value.
func (c *Controller) Session() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Login authenticates and, on success, persists the identity, opens the
// live channel keyed by the new user's id, and loads the initial contact
// list. Bad credentials return common.ErrUnauthorized with no state
// change; transport failures propagate wrapped, likewise with no partial
// state. If a logout happens while the credentials are in flight, the
// late success is discarded (logout wins) and no channel is left open.
func (c *Controller) Login(ctx context.Context, email, password string) (*models.UserIdentity, error) {
	c.mu.Lock()
	if c.sess.IsAuthenticated {
		c.mu.Unlock()
		return nil, common.ErrAlreadyLoggedIn
	}
	gen := c.gen
	c.mu.Unlock()

	user, err := c.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		// Logged out (or re-logged) while the request was in flight. Drop
		// the credentials the transport picked up along the way.
		c.logger.Warn(ctx, "discarding stale login result", "user", user.ID)
		c.api.SetToken("")
		return nil, common.ErrStaleMutation
	}

	c.sess = session.Authenticated(user)
	if err := c.store.Save(&session.State{User: user, Token: c.api.Token()}); err != nil {
		c.logger.Warn(ctx, "persisting session failed", "error", err)
	}

	c.attach(ctx, user.ID)
	return user, nil
}

// Logout clears the session, removes the persisted identity, closes the
// channel, and resets the contact list. Idempotent: calling it while
// already logged out is a no-op.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.sess = session.Anonymous()
	c.api.SetToken("")
	if err := c.store.Clear(); err != nil {
		c.logger.Warn(ctx, "clearing persisted session failed", "error", err)
	}
	if err := c.channel.Close(); err != nil {
		c.logger.Warn(ctx, "closing channel failed", "error", err)
	}
	c.rec.Reset()
}

// Restore rehydrates the session from the store at startup. The persisted
// bearer token is reattached to the API client first, so the initial fetch
// and everything after it are authenticated. A restored identity does not
// imply a live channel, so the controller re-opens the channel and reloads
// the list. Returns the restored identity or nil.
func (c *Controller) Restore(ctx context.Context) (*models.UserIdentity, error) {
	state, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if state == nil {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.api.SetToken(state.Token)
	c.sess = session.Authenticated(state.User)
	c.attach(ctx, state.User.ID)
	return state.User, nil
}

// attach opens the channel for userID, loads the initial list, and starts
// the push drain. Channel or fetch failures are not fatal to the session:
// the reconciler tolerates a dead channel, and the caller keeps an
// authenticated session that simply is not live yet. Callers hold the lock.
func (c *Controller) attach(ctx context.Context, userID string) {
	if err := c.rec.LoadInitial(ctx, userID); err != nil {
		c.logger.Warn(ctx, "initial contact fetch failed", "user", userID, "error", err)
	}

	if err := c.channel.Open(ctx, userID); err != nil {
		c.logger.Warn(ctx, "live channel open failed", "user", userID, "error", err)
		return
	}

	go c.rec.Run(context.Background(), userID, c.channel.Events(), c.notify)
}
