// Package auth manages the locally persisted bearer token and exposes
// read-only views of its JWT claims.
package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the explicit auth-state store. The token obtained at
// login is the only shared mutable state in the client; every outgoing
// request reads it through this interface.
type TokenStore interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)
	// SetToken stores a new token, replacing any previous one.
	SetToken(token string) error
	// Clear removes the stored token.
	Clear() error
}

// MemoryStore holds the token in process memory only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Token returns the stored token and whether one is present.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores a new token.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore persists the token to a single file, created with 0600
// permissions. It is the CLI's analogue of the mobile app's local
// key-value token storage.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed token store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token reads the stored token. A missing or empty file means no token.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SetToken writes the token, creating parent directories as needed.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Clear removes the token file. Removing an already-absent file is not
// an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
