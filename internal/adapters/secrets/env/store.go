package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

// Store reads secrets from environment variables. The key
// "weddingflow/llm/api_key" is read from WEDDINGFLOW_LLM_API_KEY.
type Store struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

// VariableName maps a secret key to its environment variable.
func VariableName(key string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(key) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := VariableName(key)
	if name == "" {
		return "", errors.New("secret key is empty")
	}
	value, ok := s.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("env secret %s: %w", name, domain.ErrSecretNotFound)
	}
	return strings.TrimSpace(value), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("put %s: %w", VariableName(key), ErrReadOnly)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("delete %s: %w", VariableName(key), ErrReadOnly)
}
