package application

import "github.com/bnema/weddingflow-assistant/internal/domain"

type StartSessionCommand struct {
	// SessionID may be empty, in which case a new id is generated.
	SessionID string
	Identity  domain.Identity
}
