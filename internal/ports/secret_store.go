package ports

import "context"

// SecretStore holds credentials such as the language model API key. Get
// reports a missing key with domain.ErrSecretNotFound.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
