package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
	"github.com/dmitrijs2005/contactdesk/internal/server/models"
	"github.com/dmitrijs2005/contactdesk/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	users    *services.UserService
	contacts *services.ContactService
	logger   logging.Logger
}

func NewHandler(users *services.UserService, contacts *services.ContactService, logger logging.Logger) *Handler {
	return &Handler{users: users, contacts: contacts, logger: logger}
}

type userDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type contactDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type auditDTO struct {
	ID        string    `json:"id"`
	FieldName string    `json:"field"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func toContactDTO(c models.Contact) contactDTO {
	return contactDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type contactRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internalError(w, r, "login failed", err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(user),
		"token": token,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			RespondError(w, http.StatusConflict, "email already registered")
			return
		}
		h.internalError(w, r, "registration failed", err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]any{"user": toUserDTO(user)})
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID != UserIDFromContext(r.Context()) {
		RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.contacts.List(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, "listing contacts failed", err)
		return
	}

	out := make([]contactDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toContactDTO(c))
	}
	RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID != UserIDFromContext(r.Context()) {
		RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.contacts.Create(r.Context(), userID, req.FirstName, req.LastName, req.Email, req.PhoneNumber)
	if err != nil {
		h.internalError(w, r, "creating contact failed", err)
		return
	}

	RespondJSON(w, http.StatusCreated, toContactDTO(*contact))
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.ownedContact(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.contacts.Update(r.Context(), contact.ID, req.FirstName, req.LastName, req.Email, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "contact not found")
			return
		}
		h.internalError(w, r, "updating contact failed", err)
		return
	}

	RespondJSON(w, http.StatusOK, toContactDTO(*updated))
}

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.ownedContact(w, r)
	if !ok {
		return
	}

	if err := h.contacts.Delete(r.Context(), contact.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "contact not found")
			return
		}
		h.internalError(w, r, "deleting contact failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ContactHistory(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.ownedContact(w, r)
	if !ok {
		return
	}

	entries, err := h.contacts.History(r.Context(), contact.ID)
	if err != nil {
		h.internalError(w, r, "loading history failed", err)
		return
	}

	out := make([]auditDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditDTO{
			ID:        e.ID,
			FieldName: e.FieldName,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			ChangedAt: e.ChangedAt,
		})
	}
	RespondJSON(w, http.StatusOK, out)
}

// ownedContact loads the contact from the {id} URL param and enforces that
// it belongs to the authenticated user. Responds and returns ok=false on
// any failure.
func (h *Handler) ownedContact(w http.ResponseWriter, r *http.Request) (*models.Contact, bool) {
	id := chi.URLParam(r, "id")

	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "contact not found")
			return nil, false
		}
		h.internalError(w, r, "loading contact failed", err)
		return nil, false
	}

	if contact.UserID != UserIDFromContext(r.Context()) {
		RespondError(w, http.StatusForbidden, "forbidden")
		return nil, false
	}

	return contact, true
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(r.Context(), msg, "error", err)
	RespondError(w, http.StatusInternalServerError, "internal error")
}
