package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/bnema/weddingflow-assistant/internal/application"
	"github.com/bnema/weddingflow-assistant/internal/domain"
)

const (
	CompanyHeader = "X-Company-ID"
	UserHeader    = "X-User-ID"
)

// Assistant is the dialogue surface the HTTP API drives.
type Assistant interface {
	StartSession(ctx context.Context, identity domain.Identity, sessionID string) (domain.ConversationContext, error)
	Authorize(ctx context.Context, sessionID string, identity domain.Identity) error
	HandleUserMessage(ctx context.Context, sessionID, text string) (application.AssistantResponse, error)
	EndSession(ctx context.Context, sessionID string) error
	Tools() []domain.ToolDefinition
}

var _ Assistant = (*application.Controller)(nil)

func NewRouter(assistant Assistant, logger zerolog.Logger) *mux.Router {
	h := &handler{assistant: assistant, logger: logger}

	router := mux.NewRouter()
	router.Use(recoveryMiddleware(logger), loggingMiddleware(logger))

	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/tools", h.listTools).Methods(http.MethodGet)

	sessions := v1.PathPrefix("/sessions").Subrouter()
	sessions.Use(identityMiddleware)
	sessions.HandleFunc("", h.startSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{sessionID}/messages", h.postMessage).Methods(http.MethodPost)
	sessions.HandleFunc("/{sessionID}", h.endSession).Methods(http.MethodDelete)

	return router
}
