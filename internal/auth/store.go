// Package auth owns the credential pair and the session lifecycle visible
// to the rest of the application.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// credentialFile is the on-disk layout. Access and refresh tokens live in
// one document so a write replaces the pair atomically.
type credentialFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore persists the token pair to a JSON file, surviving restarts until
// logout or renewal overwrites it. Safe for concurrent use.
type FileStore struct {
	path string

	mu     sync.RWMutex
	loaded bool
	cached credentialFile
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialsPath resolves the credentials file path in priority order:
// 1. LINGO_CREDENTIALS environment variable
// 2. $XDG_CONFIG_HOME/lingo/credentials.json
// 3. ~/.config/lingo/credentials.json
func DefaultCredentialsPath() (string, error) {
	if p := os.Getenv("LINGO_CREDENTIALS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "lingo", "credentials.json"), nil
}

// Tokens returns the stored pair, or empty strings when logged out.
func (s *FileStore) Tokens() (access, refresh string) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.cached.AccessToken, s.cached.RefreshToken
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.cached = readCredentialFile(s.path)
		s.loaded = true
	}
	return s.cached.AccessToken, s.cached.RefreshToken
}

// SetTokens replaces the stored pair. Empty tokens clear the file entirely,
// keeping the both-present-or-both-absent invariant.
func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if access == "" && refresh == "" {
		s.cached = credentialFile{}
		s.loaded = true
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("clear credentials: %w", err)
		}
		return nil
	}
	if access == "" || refresh == "" {
		return fmt.Errorf("refusing to store a partial credential pair")
	}

	if err := writeCredentialFile(s.path, credentialFile{
		AccessToken:  access,
		RefreshToken: refresh,
	}); err != nil {
		return err
	}
	s.cached = credentialFile{AccessToken: access, RefreshToken: refresh}
	s.loaded = true
	return nil
}

// Clear removes both tokens.
func (s *FileStore) Clear() error {
	return s.SetTokens("", "")
}

func readCredentialFile(path string) credentialFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return credentialFile{}
	}
	var cf credentialFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return credentialFile{}
	}
	// A mixed pair on disk is treated as no credentials at all.
	if cf.AccessToken == "" || cf.RefreshToken == "" {
		return credentialFile{}
	}
	return cf
}

// writeCredentialFile writes via a temp file and rename so a crash mid-write
// never leaves a torn pair on disk.
func writeCredentialFile(path string, cf credentialFile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
