// Package ws pushes contact change events to connected clients over
// websocket. Each user has a room; every client of that user that has sent
// a join frame receives the user's update and delete events.
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/contactdesk/internal/logging"
	"github.com/dmitrijs2005/contactdesk/internal/server/models"
	"github.com/gorilla/websocket"
)

const (
	EventJoin           = "join"
	EventContactUpdated = "contact_updated"
	EventContactDeleted = "contact_deleted"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type contactPayload struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Hub struct {
	logger   logging.Logger
	upgrader websocket.Upgrader

	register   chan subscription
	unregister chan subscription
	broadcast  chan message
}

type subscription struct {
	userID string
	conn   *websocket.Conn
}

type message struct {
	userID string
	frame  frame
}

func NewHub(logger logging.Logger) *Hub {
	h := &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		register:   make(chan subscription),
		unregister: make(chan subscription),
		broadcast:  make(chan message, 16),
	}
	go h.run()
	return h
}

// run owns the room map. Writes to a websocket connection only ever happen
// here, so no per-connection write lock is needed.
func (h *Hub) run() {
	rooms := make(map[string]map[*websocket.Conn]struct{})

	for {
		select {
		case sub := <-h.register:
			room := rooms[sub.userID]
			if room == nil {
				room = make(map[*websocket.Conn]struct{})
				rooms[sub.userID] = room
			}
			room[sub.conn] = struct{}{}

		case sub := <-h.unregister:
			if room, ok := rooms[sub.userID]; ok {
				delete(room, sub.conn)
				if len(room) == 0 {
					delete(rooms, sub.userID)
				}
			}
			sub.conn.Close()

		case msg := <-h.broadcast:
			for conn := range rooms[msg.userID] {
				if err := conn.WriteJSON(msg.frame); err != nil {
					h.logger.Warn(context.Background(), "websocket write failed, dropping client", "error", err)
					delete(rooms[msg.userID], conn)
					conn.Close()
				}
			}
		}
	}
}

// ServeHTTP upgrades the request and serves the connection until the client
// disconnects. The first frame must be a join carrying the user id.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	var join frame
	if err := conn.ReadJSON(&join); err != nil || join.Event != EventJoin {
		conn.Close()
		return
	}

	var userID string
	if err := json.Unmarshal(join.Data, &userID); err != nil || userID == "" {
		conn.Close()
		return
	}

	sub := subscription{userID: userID, conn: conn}
	h.register <- sub

	// Clients only send the join frame; drain until the connection dies.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister <- sub
}

func (h *Hub) ContactUpdated(userID string, contact models.Contact) {
	h.notify(userID, EventContactUpdated, contact)
}

func (h *Hub) ContactDeleted(userID string, contact models.Contact) {
	h.notify(userID, EventContactDeleted, contact)
}

func (h *Hub) notify(userID, event string, contact models.Contact) {
	data, err := json.Marshal(contactPayload{
		ID:          contact.ID,
		UserID:      contact.UserID,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Email:       contact.Email,
		PhoneNumber: contact.PhoneNumber,
	})
	if err != nil {
		h.logger.Error(context.Background(), "error marshaling contact event", "error", err)
		return
	}
	h.broadcast <- message{userID: userID, frame: frame{Event: event, Data: data}}
}
