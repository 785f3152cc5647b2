// Package pass reads and writes credentials through the pass(1) password
// manager.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const (
	notInStore = "is not in the password store"
	// gpg may prompt for a passphrase; a chat turn must not wait on it forever.
	defaultTimeout = 15 * time.Second
)

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run     runFunc
	prefix  string
	timeout time.Duration
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithPrefix stores every key below a pass folder, e.g. "work" turns
// "weddingflow/llm/api_key" into "work/weddingflow/llm/api_key".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{run: runPassCommand, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	entry, err := s.entry(key)
	if err != nil {
		return err
	}

	_, stderr, err := s.exec(ctx, strings.TrimSpace(value)+"\n", "insert", "-m", "-f", entry)
	if err != nil {
		return formatError("put", entry, err, stderr)
	}
	return nil
}

// Get returns the first line of the entry. pass keeps the secret there and
// free-form metadata below it.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.entry(key)
	if err != nil {
		return "", err
	}

	stdout, stderr, err := s.exec(ctx, "", "show", entry)
	if err != nil {
		if strings.Contains(stderr, notInStore) {
			return "", fmt.Errorf("pass get %q: %w", entry, domain.ErrSecretNotFound)
		}
		return "", formatError("get", entry, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "", fmt.Errorf("pass get %q: entry is empty: %w", entry, domain.ErrSecretNotFound)
	}
	return first, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	entry, err := s.entry(key)
	if err != nil {
		return err
	}

	_, stderr, err := s.exec(ctx, "", "rm", "-f", entry)
	if err != nil {
		return formatError("delete", entry, err, stderr)
	}
	return nil
}

func (s *Store) entry(key string) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("secret key is empty")
	}
	if s.prefix == "" {
		return key, nil
	}
	return path.Join(s.prefix, key), nil
}

func (s *Store) exec(ctx context.Context, input string, args ...string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.run(ctx, input, args...)
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}
	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
