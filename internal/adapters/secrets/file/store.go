// Package file keeps credentials as individual files under the weddingflow
// data directory, one key per path.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	dirMode        = 0o700
	credentialMode = 0o600
	tempPattern    = ".credential-*.tmp"
)

var (
	ErrMultilineValue = errors.New("credential must be a single line")
	ErrLoosePerms     = errors.New("credential file is readable by other users")
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the credential atomically so a concurrent reader never sees a
// truncated key.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("credential %q: value is empty", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("credential %q: %w", key, ErrMultilineValue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(path, value+"\n"); err != nil {
		return fmt.Errorf("write credential %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("credential %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("stat credential %q: %w", key, err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		return "", fmt.Errorf("credential %q (mode %o): %w", key, info.Mode().Perm(), ErrLoosePerms)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credential %q: %w", key, err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("credential %q is empty: %w", key, domain.ErrSecretNotFound)
	}
	return value, nil
}

// Delete succeeds when the credential is already gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}
	return nil
}

// credentialPath maps "weddingflow/llm/api_key" to <root>/weddingflow/llm/api_key
// and refuses keys that would escape root.
func (s *Store) credentialPath(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}

func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempName := temp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tempName)
		}
	}()

	if err := temp.Chmod(credentialMode); err != nil {
		_ = temp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := temp.WriteString(content); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	committed = true
	return nil
}
