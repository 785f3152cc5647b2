package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/weddingflow-assistant/internal/adapters/secrets/env"
	filestore "github.com/bnema/weddingflow-assistant/internal/adapters/secrets/file"
	passstore "github.com/bnema/weddingflow-assistant/internal/adapters/secrets/pass"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

// Store consults its backends in order. Reads return the first hit; writes go
// to the first backend that accepts them.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret chain has no backends")

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

// NewCredentialChain reads from the environment first, then pass, then files
// under fileRoot.
func NewCredentialChain(fileRoot string) (*Store, error) {
	return NewStore(envstore.NewStore(), passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("backend %d get failed: %w", i, err))
	}

	return "", errors.Join(errs...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d put failed: %w", i, err))
	}

	return errors.Join(errs...)
}

// Delete removes the key from every writable backend.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d delete failed: %w", i, err))
	}

	if deleted {
		return nil
	}
	return errors.Join(errs...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
