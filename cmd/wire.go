package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/weddingflow-assistant/internal/adapters/llm/openai"
	"github.com/bnema/weddingflow-assistant/internal/adapters/render/response"
	"github.com/bnema/weddingflow-assistant/internal/adapters/repo/memory"
	sqliterepo "github.com/bnema/weddingflow-assistant/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/weddingflow-assistant/internal/adapters/repo/toml"
	chainstore "github.com/bnema/weddingflow-assistant/internal/adapters/secrets/chain"
	envstore "github.com/bnema/weddingflow-assistant/internal/adapters/secrets/env"
	"github.com/bnema/weddingflow-assistant/internal/application"
	"github.com/bnema/weddingflow-assistant/internal/config"
	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/logger"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const serviceName = "weddingflow"

type app struct {
	viper    *viper.Viper
	config   config.Config
	logger   zerolog.Logger
	catalog  *application.Catalog
	secrets  ports.SecretStore
	clock    ports.Clock
	renderer func(application.AssistantResponse, response.RenderOptions) (string, error)
}

// assistantRuntime is everything one chat or serve invocation talks to.
type assistantRuntime struct {
	controller *application.Controller
	sessions   *application.SessionService
	close      func() error
}

func wireApp() (*app, error) {
	v, err := config.NewViper(os.Getenv("WF_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewCredentialChain(filepath.Join(homeDir, config.DataDir, "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	catalog, err := application.NewDefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("wire tool catalog: %w", err)
	}

	return &app{
		viper:    v,
		config:   cfg,
		logger:   logger.New(serviceName, cfg.Log.Level, cfg.Log.Format),
		catalog:  catalog,
		secrets:  secretStore,
		clock:    ports.SystemClock{},
		renderer: response.Render,
	}, nil
}

func (a *app) newRuntime(ctx context.Context) (*assistantRuntime, error) {
	store, closeStore, err := a.newEntityStore(ctx)
	if err != nil {
		return nil, err
	}
	sessionStore, err := a.newSessionStore()
	if err != nil {
		return nil, errors.Join(err, closeStore())
	}
	model, err := a.newLanguageModel(ctx)
	if err != nil {
		return nil, errors.Join(err, closeStore())
	}

	dialogue := a.config.Dialogue
	sessions := application.NewSessionService(sessionStore, a.clock, dialogue.MaxRecentTurns)
	controller := application.NewController(application.ControllerDeps{
		Sessions: sessions,
		Catalog:  a.catalog,
		Store:    store,
		Model:    model,
		Clock:    a.clock,
		Logger:   a.logger,
	}, application.ControllerConfig{
		Expiry: domain.ExpiryPolicy{TTL: dialogue.PendingTTL, MaxTurns: dialogue.PendingMaxTurns},
		Resolver: application.ResolverOptions{
			Threshold: dialogue.MatchThreshold,
			Margin:    dialogue.AmbiguityMargin,
		},
	})

	return &assistantRuntime{controller: controller, sessions: sessions, close: closeStore}, nil
}

func (a *app) newEntityStore(ctx context.Context) (ports.EntityStore, func() error, error) {
	noop := func() error { return nil }

	switch a.config.Store.Driver {
	case config.DriverSQLite:
		store, err := sqliterepo.NewEntityStore(ctx, a.viper, a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("wire sqlite entity store: %w", err)
		}
		return store, store.Close, nil
	case config.DriverMemory:
		return memory.NewEntityStore(a.clock), noop, nil
	default:
		store, err := tomlrepo.NewEntityStore(a.viper, a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("wire toml entity store: %w", err)
		}
		return store, noop, nil
	}
}

func (a *app) newSessionStore() (ports.SessionStore, error) {
	if a.config.Sessions.Driver == config.DriverMemory {
		return memory.NewSessionStore(), nil
	}
	store, err := tomlrepo.NewSessionStore(a.viper)
	if err != nil {
		return nil, fmt.Errorf("wire toml session store: %w", err)
	}
	return store, nil
}

// newLanguageModel looks up the API key. A missing key is only an error for
// the hosted endpoint; local OpenAI-compatible servers usually need none.
func (a *app) newLanguageModel(ctx context.Context) (ports.LanguageModel, error) {
	llm := a.config.LLM

	apiKey, err := a.secrets.Get(ctx, llm.APIKeyRef)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSecretNotFound) && llm.BaseURL != openai.DefaultBaseURL:
		apiKey = ""
	case errors.Is(err, domain.ErrSecretNotFound):
		return nil, fmt.Errorf("no API key under %q: run `wf auth set --secret-value <key>` or set %s", llm.APIKeyRef, envstore.VariableName(llm.APIKeyRef))
	default:
		return nil, fmt.Errorf("read API key %q: %w", llm.APIKeyRef, err)
	}

	return openai.NewClient(openai.Config{
		BaseURL: llm.BaseURL,
		Model:   llm.Model,
		APIKey:  apiKey,
		Timeout: llm.Timeout,
	}), nil
}
