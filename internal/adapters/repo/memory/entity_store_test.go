package memory

import (
	"testing"

	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/storetest"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

func TestEntityStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T, clock ports.Clock) ports.EntityStore {
		return NewEntityStore(clock)
	})
}
