// Package session holds the client's authentication state: the Session
// value (who is logged in right now) and the Store that persists a single
// identity across restarts.
package session

import "github.com/dmitrijs2005/contactdesk/internal/client/models"

// Session is the authentication state of the client. The invariant
// IsAuthenticated == (User != nil) is maintained by constructing sessions
// only through Authenticated and Anonymous.
type Session struct {
	User            *models.UserIdentity
	IsAuthenticated bool
}

// Authenticated returns a session for the given identity.
func Authenticated(user *models.UserIdentity) Session {
	return Session{User: user, IsAuthenticated: user != nil}
}

// Anonymous returns the logged-out session.
func Anonymous() Session {
	return Session{}
}

// UserID returns the current user's id, or "" when logged out.
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
