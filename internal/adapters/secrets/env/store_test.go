package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

func TestVariableName(t *testing.T) {
	tests := map[string]string{
		"weddingflow/llm/api_key": "WEDDINGFLOW_LLM_API_KEY",
		"openai.key":              "OPENAI_KEY",
		"  spaced ":               "SPACED",
	}
	for key, want := range tests {
		assert.Equal(t, want, VariableName(key), key)
	}
}

func TestStoreGetReadsEnvironment(t *testing.T) {
	t.Setenv("WEDDINGFLOW_LLM_API_KEY", " sk-env \n")

	value, err := NewStore().Get(context.Background(), "weddingflow/llm/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", value)
}

func TestStoreGetMissingIsNotFound(t *testing.T) {
	store := &Store{lookup: func(string) (string, bool) { return "", false }}

	_, err := store.Get(context.Background(), "weddingflow/llm/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreWritesAreRejected(t *testing.T) {
	store := NewStore()

	require.ErrorIs(t, store.Put(context.Background(), "weddingflow/llm/api_key", "x"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), "weddingflow/llm/api_key"), ErrReadOnly)
}
