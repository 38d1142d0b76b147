// Package identity persists the signed-in user between runs of the client.
package identity

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// StateKey is the fixed key the user record is stored under.
const StateKey = "eli5_user"

type User struct {
	Id    string `yaml:"id" json:"id"`
	Email string `yaml:"email" json:"email"`
	Name  string `yaml:"name" json:"name"`
}

type Store interface {
	// Load returns nil, nil when no user is stored.
	Load() (*User, error)
	Save(user *User) error
	Clear() error
}

// FileStore keeps the user in a YAML state file. Other top-level keys in the
// file are preserved.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) readState() (map[string]interface{}, error) {
	state := map[string]interface{}{}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = map[string]interface{}{}
	}
	return state, nil
}

func (s *FileStore) writeState(state map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load() (*User, error) {
	state, err := s.readState()
	if err != nil {
		return nil, err
	}
	entry, ok := state[StateKey]
	if !ok || entry == nil {
		return nil, nil
	}
	// Round-trip through YAML to decode the generic map into User.
	raw, err := yaml.Marshal(entry)
	if err != nil {
		return nil, err
	}
	var user User
	if err := yaml.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	if user.Id == "" {
		return nil, nil
	}
	return &user, nil
}

func (s *FileStore) Save(user *User) error {
	state, err := s.readState()
	if err != nil {
		return err
	}
	state[StateKey] = user
	return s.writeState(state)
}

func (s *FileStore) Clear() error {
	state, err := s.readState()
	if err != nil {
		return err
	}
	if _, ok := state[StateKey]; !ok {
		return nil
	}
	delete(state, StateKey)
	return s.writeState(state)
}

// Context is the current identity of the running client, backed by a Store.
type Context struct {
	mu      sync.RWMutex
	store   Store
	current *User
}

func NewContext(store Store) *Context {
	return &Context{store: store}
}

// Load restores the persisted user, if any.
func (c *Context) Load() (*User, error) {
	user, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.current = user
	c.mu.Unlock()
	return user, nil
}

func (c *Context) Current() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	u := *c.current
	return &u
}

func (c *Context) Save(user *User) error {
	if err := c.store.Save(user); err != nil {
		return err
	}
	u := *user
	c.mu.Lock()
	c.current = &u
	c.mu.Unlock()
	return nil
}

func (c *Context) Clear() error {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
	return c.store.Clear()
}
