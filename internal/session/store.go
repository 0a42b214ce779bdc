package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// state is what survives between CLI invocations.
type state struct {
	User        *User     `yaml:"user,omitempty"`
	AccessToken string    `yaml:"access_token,omitempty"`
	ExpiresAt   time.Time `yaml:"expires_at,omitempty"`
}

func (s state) valid(now time.Time) bool {
	return s.User != nil && s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// Store persists the session as YAML.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is <user config dir>/studybuddy/session.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studybuddy", "session.yaml"), nil
}

func (s *Store) load() (state, error) {
	var st state
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return state{}, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return st, nil
}

func (s *Store) save(st state) error {
	if st.User == nil {
		err := os.Remove(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	raw, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
