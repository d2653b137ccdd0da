package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/logging"
	"github.com/dmitrijs2005/contactdesk/internal/server/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func dialAndJoin(t *testing.T, url, userID string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	data, err := json.Marshal(userID)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(frame{Event: EventJoin, Data: data}))

	// Give the hub a moment to register the subscription.
	time.Sleep(50 * time.Millisecond)

	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestHubDeliversToJoinedUser(t *testing.T) {
	hub := NewHub(testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn := dialAndJoin(t, url, "u1")

	hub.ContactUpdated("u1", models.Contact{ID: "c1", UserID: "u1", FirstName: "Ada"})

	f := readFrame(t, conn)
	assert.Equal(t, EventContactUpdated, f.Event)

	var payload contactPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, "c1", payload.ID)
	assert.Equal(t, "Ada", payload.FirstName)
}

func TestHubScopesEventsToRoom(t *testing.T) {
	hub := NewHub(testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	other := dialAndJoin(t, url, "u2")
	mine := dialAndJoin(t, url, "u1")

	hub.ContactDeleted("u1", models.Contact{ID: "c1", UserID: "u1"})

	f := readFrame(t, mine)
	assert.Equal(t, EventContactDeleted, f.Event)

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var stray frame
	err := other.ReadJSON(&stray)
	assert.Error(t, err)
}

func TestHubFanOutToAllClientsOfUser(t *testing.T) {
	hub := NewHub(testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	first := dialAndJoin(t, url, "u1")
	second := dialAndJoin(t, url, "u1")

	hub.ContactUpdated("u1", models.Contact{ID: "c1", UserID: "u1"})

	assert.Equal(t, EventContactUpdated, readFrame(t, first).Event)
	assert.Equal(t, EventContactUpdated, readFrame(t, second).Event)
}

func TestHubRejectsMissingJoin(t *testing.T) {
	hub := NewHub(testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(frame{Event: "something_else"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
