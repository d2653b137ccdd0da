package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the REST routes and the websocket endpoint. push may be
// nil when the server runs without the websocket hub.
func NewRouter(h *Handler, secret []byte, push http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Post("/users/login", h.Login)
		api.Post("/users/register", h.Register)

		api.Group(func(authed chi.Router) {
			authed.Use(Authenticator(secret))

			// {id} is the owner's user id for list/create and the
			// contact id for the rest.
			authed.Get("/contacts/{id}", h.ListContacts)
			authed.Post("/contacts/{id}", h.CreateContact)
			authed.Put("/contacts/{id}", h.UpdateContact)
			authed.Delete("/contacts/{id}", h.DeleteContact)
			authed.Get("/contacts/{id}/history", h.ContactHistory)
		})
	})

	if push != nil {
		r.Get("/ws", push.ServeHTTP)
	}

	return r
}
