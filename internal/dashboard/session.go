package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoSession means no cached session exists; the user has to log in first.
var ErrNoSession = errors.New("no cached session, log in first")

// Session is the locally cached login state: the bearer token and the email
// it was issued for.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// SaveSession writes the session to path with owner-only permissions.
func SaveSession(path string, s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession reads a cached session. A missing file maps to ErrNoSession.
func LoadSession(path string) (Session, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	} else if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	if s.Token == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// ClearSession removes the cached session, which is a no-op when absent.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
