// Package session holds the client's credentials: the bearer token
// issued at login and the user it belongs to. The store is the one
// piece of state shared by every outgoing request, so it is passed
// explicitly to the request layer instead of living in a global.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Zakhar-Rapitskyi/railbook/internal/clock"
	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// credentials is the persisted shape. It mirrors what the original
// client kept in browser storage: the raw token plus the user object.
type credentials struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Store keeps the current session's credentials. The zero value is an
// empty in-memory store; use NewFileStore for persistence across runs.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	creds credentials
	path  string // empty for in-memory stores
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// NewFileStore returns a store persisted at path. Existing credentials
// are loaded if the file is present; a missing or unreadable file is
// treated as a logged-out session, never an error.
func NewFileStore(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return s
	}
	s.creds = creds
	return s
}

// Set stores the token and user issued by a successful login or
// registration.
func (s *Store) Set(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{Token: token, User: user}
	return s.persist()
}

// Clear drops the credentials. Called on logout and whenever the
// backend answers 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	return s.persist()
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// CurrentUser returns the stored user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.User
}

// IsAuthenticated reports whether a token is present and not expired.
// The expiry claim is read without signature verification; the client
// holds no signing key and the server re-checks every request anyway.
// A malformed token or a past exp clears the store and returns false.
func (s *Store) IsAuthenticated(c clock.Clock) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		_ = s.Clear()
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		_ = s.Clear()
		return false
	}
	if exp.Before(c.Now()) {
		_ = s.Clear()
		return false
	}
	return true
}

// HasRole reports whether the stored user carries the given role.
func (s *Store) HasRole(role string) bool {
	user := s.CurrentUser()
	return user != nil && user.Role == role
}

// IsAdmin reports whether the current user is an administrator.
func (s *Store) IsAdmin() bool {
	return s.HasRole(models.RoleAdmin)
}

// IsConductor reports whether the current user is a conductor.
func (s *Store) IsConductor() bool {
	return s.HasRole(models.RoleConductor)
}

// persist writes the credentials to disk. Caller must hold s.mu.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
