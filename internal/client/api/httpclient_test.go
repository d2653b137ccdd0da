package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 3*time.Second)
}

func TestHTTPClient_Login_StoresTokenAndSendsIt(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ann@example.com", req.Email)
		json.NewEncoder(w).Encode(loginResponse{
			User:  models.UserIdentity{ID: "u1", FirstName: "Ann"},
			Token: "tok-123",
		})
	})
	mux.HandleFunc("GET /api/contacts/u1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Contact{{ID: "c1", FirstName: "Bob"}})
	})

	c := newClient(t, mux)

	user, err := c.Login(context.Background(), "ann@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	contacts, err := c.ListContacts(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestHTTPClient_SetToken_AttachesAndDetaches(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/contacts/u1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Contact{})
	})

	c := newClient(t, mux)

	c.SetToken("tok-restored")
	require.Equal(t, "tok-restored", c.Token())

	_, err := c.ListContacts(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-restored", gotAuth)

	c.SetToken("")
	require.Empty(t, c.Token())

	_, err = c.ListContacts(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, gotAuth, "cleared token must not be sent")
}

func TestHTTPClient_Login_BadCredentials(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), "ann@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestHTTPClient_ServerDown_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.ListContacts(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, common.ErrNotFound},
		{"forbidden", http.StatusForbidden, common.ErrUnauthorized},
		{"conflict", http.StatusConflict, common.ErrAlreadyExists},
		{"server error", http.StatusInternalServerError, common.ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			_, err := c.UpdateContact(context.Background(), models.Contact{ID: "c9"})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHTTPClient_DeleteContact_NoContent(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/contacts/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteContact(context.Background(), "c1"))
}

func TestHTTPClient_ContactHistory(t *testing.T) {
	old := "Ann"
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/contacts/c1/history", r.URL.Path)
		json.NewEncoder(w).Encode([]models.AuditEntry{
			{ID: "a1", FieldName: "first_name", OldValue: &old, ChangedAt: time.Now().UTC()},
		})
	}))

	history, err := c.ContactHistory(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "first_name", history[0].FieldName)
	require.Equal(t, "Ann", *history[0].OldValue)
}
