package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
)

// HTTPClient is the REST implementation of Client. The access token
// obtained on login is attached as a bearer token to every subsequent
// request.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns an HTTPClient bound to baseURL (e.g.
// "http://127.0.0.1:8080"). The timeout applies per request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
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

type loginResponse struct {
	User  models.UserIdentity `json:"user"`
	Token string              `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.UserIdentity, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/users/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return &resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, firstName, lastName, email, password string) (*models.UserIdentity, error) {
	req := registerRequest{FirstName: firstName, LastName: lastName, Email: email, Password: password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context, userID string) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts/"+userID, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *HTTPClient) CreateContact(ctx context.Context, userID string, draft models.ContactDraft) (models.Contact, error) {
	var created models.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts/"+userID, draft, &created); err != nil {
		return models.Contact{}, err
	}
	return created, nil
}

func (c *HTTPClient) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var updated models.Contact
	if err := c.do(ctx, http.MethodPut, "/api/contacts/"+contact.ID, contact, &updated); err != nil {
		return models.Contact{}, err
	}
	return updated, nil
}

func (c *HTTPClient) DeleteContact(ctx context.Context, contactID string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+contactID, nil, nil)
}

func (c *HTTPClient) ContactHistory(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	var history []models.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/api/contacts/"+contactID+"/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Token returns the bearer token currently attached to requests.
func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token. An empty string detaches credentials.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// do performs one JSON round trip. body and out may be nil. Transport and
// status errors are mapped to the shared sentinels so callers can use
// errors.Is without knowing about HTTP.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus converts HTTP status codes to the shared error sentinels.
func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return common.ErrUnauthorized
	case code == http.StatusNotFound:
		return common.ErrNotFound
	case code == http.StatusConflict:
		return common.ErrAlreadyExists
	case code >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, code)
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
