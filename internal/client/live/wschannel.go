package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
)

// eventBufferSize bounds the queue between the websocket reader and the
// consumer. When the consumer lags behind, the oldest pending event is
// dropped; push delivery is best-effort and the reconciler must tolerate
// missed events anyway.
const eventBufferSize = 64

// WSChannel is the websocket implementation of Channel.
type WSChannel struct {
	url    string
	logger logging.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	events chan Event
}

// NewWSChannel returns a channel that will dial url (e.g.
// "ws://127.0.0.1:8080/ws") on Open.
func NewWSChannel(url string, logger logging.Logger) *WSChannel {
	return &WSChannel{url: url, logger: logger}
}

// Open dials the push endpoint and sends the join message enrolling the
// connection in the per-user update group. An already-open connection is
// closed first so at most one subscription exists at a time.
func (c *WSChannel) Open(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}

	joinData, err := json.Marshal(userID)
	if err != nil {
		conn.Close()
		return err
	}
	if err := conn.WriteJSON(Frame{Event: "join", Data: joinData}); err != nil {
		conn.Close()
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}

	c.conn = conn
	c.events = make(chan Event, eventBufferSize)
	go c.readLoop(conn, c.events)

	return nil
}

// Events returns the event stream of the current connection. It is nil
// before the first Open.
func (c *WSChannel) Events() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

// Close terminates the connection. The server drops the group membership
// when the connection goes away. Idempotent.
func (c *WSChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *WSChannel) closeLocked() {
	if c.conn == nil {
		return
	}
	_ = c.conn.Close()
	c.conn = nil
}

// readLoop decodes inbound frames into events until the connection drops.
// It owns the events channel and closes it on exit.
func (c *WSChannel) readLoop(conn *websocket.Conn, events chan Event) {
	defer close(events)

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		kind := EventKind(frame.Event)
		if kind != EventContactUpdated && kind != EventContactDeleted {
			c.logger.Warn(context.Background(), "ignoring unknown push event", "event", frame.Event)
			continue
		}

		var contact models.Contact
		if err := json.Unmarshal(frame.Data, &contact); err != nil {
			c.logger.Warn(context.Background(), "malformed push payload", "event", frame.Event, "error", err)
			continue
		}

		ev := Event{Kind: kind, Contact: contact}
		select {
		case events <- ev:
		default:
			// Buffer full: drop the oldest pending event to make room.
			select {
			case <-events:
			default:
			}
			select {
			case events <- ev:
			default:
			}
		}
	}
}
