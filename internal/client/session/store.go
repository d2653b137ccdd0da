package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/contactdesk/internal/client/models"
)

// StorageFileName is the fixed name under which the persisted login state
// is stored. Presence of the file implies an authenticated session at
// startup.
const StorageFileName = "user.json"

// State is the durable login state: the identity plus the bearer token
// that authenticates its API requests. Restoring the identity without the
// token would yield a session that cannot reach any endpoint.
type State struct {
	User  *models.UserIdentity `json:"user"`
	Token string               `json:"token"`
}

// Store persists at most one login state across restarts. It is the sole
// durable copy of "who is logged in"; the in-memory Session is rehydrated
// from it at startup and never the reverse during normal operation.
type Store interface {
	// Save replaces the persisted state.
	Save(state *State) error
	// Load returns the persisted state, or nil if none is stored.
	// Restoration is best-effort: an unreadable or corrupt file yields nil.
	Load() (*State, error)
	// Clear removes the persisted state. Safe to call when none exists.
	Clear() error
}

// FileStore keeps the login state as one JSON file in a state directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, StorageFileName)
}

func (s *FileStore) Save(state *State) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

func (s *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt state file: treat as logged out rather than failing startup.
		return nil, nil
	}
	if state.User == nil {
		return nil, nil
	}
	return &state, nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
