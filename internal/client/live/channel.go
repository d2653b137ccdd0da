// Package live implements the push-notification channel: a persistent
// websocket subscription, scoped to one authenticated user, that delivers
// contact change events pushed by the server.
package live

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
)

// EventKind discriminates the two push event types.
type EventKind string

const (
	EventContactUpdated EventKind = "contact_updated"
	EventContactDeleted EventKind = "contact_deleted"
)

// Event is one inbound push notification carrying a full contact payload.
type Event struct {
	Kind    EventKind
	Contact models.Contact
}

// Frame is the wire format of channel messages in both directions.
// For the initial join message Data holds the user id as a JSON string;
// for contact events it holds the contact object.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Channel is one per-user push subscription. Exactly one channel may be
// open per authenticated session; the session controller is the only
// component that opens or closes it.
//
// Contract:
//   - Open connects and announces membership in the user's update group.
//     Opening while already open closes the previous connection first.
//   - Events returns the stream for the current connection. The channel is
//     closed when the connection drops or Close is called. Delivery is
//     best-effort: a full buffer drops the oldest pending event.
//   - Close terminates the connection and is safe to call repeatedly.
type Channel interface {
	Open(ctx context.Context, userID string) error
	Events() <-chan Event
	Close() error
}
