// Package settings persists small bits of client state between runs,
// currently just the conversation that was last open.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bssshyamsundhar/float-chat/internal/utils"
)

// Settings is the on-disk shape of settings.json.
type Settings struct {
	LastConversation string `json:"lastConversation"`
}

// Store reads and writes settings.json under one data directory. A nil
// Store is valid and remembers nothing, so callers that failed to open
// one never have to branch.
type Store struct {
	dir      string
	settings Settings
}

// Open resolves the data directory (empty means ~/.floatchat) and loads
// any existing settings file. A missing file is a fresh store, not an
// error.
func Open(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".floatchat")
	}
	s := &Store{dir: dir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path is the location of the settings file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, "settings.json")
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.settings)
}

// Save writes the current settings atomically, creating the data
// directory on first use.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.Path(), data, 0o644)
}

// UpdateLastConversation records the conversation most recently open,
// saving only when the value changed.
func (s *Store) UpdateLastConversation(id string) error {
	if s == nil {
		return nil
	}
	id = strings.TrimSpace(id)
	if id == "" || s.settings.LastConversation == id {
		return nil
	}
	s.settings.LastConversation = id
	return s.Save()
}

// LastConversation returns the conversation id recorded by a previous
// run, or empty.
func (s *Store) LastConversation() string {
	if s == nil {
		return ""
	}
	return s.settings.LastConversation
}
