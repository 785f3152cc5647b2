// Package config loads layered settings: defaults, ~/.weddingflow/config.toml,
// WF_* environment variables and finally bound cobra flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "WF"
	DataDir    = ".weddingflow"
	configName = "config"
)

const (
	KeyStoreDriver     = "store.driver"
	KeyStorePath       = "store.path"
	KeySessionsDriver  = "sessions.driver"
	KeySessionsPath    = "sessions.path"
	KeyLLMBaseURL      = "llm.base_url"
	KeyLLMModel        = "llm.model"
	KeyLLMAPIKeyRef    = "llm.api_key_ref"
	KeyLLMTimeout      = "llm.timeout"
	KeyMaxRecentTurns  = "dialogue.max_recent_turns"
	KeyPendingTTL      = "dialogue.pending_ttl"
	KeyPendingMaxTurns = "dialogue.pending_max_turns"
	KeyMatchThreshold  = "dialogue.match_threshold"
	KeyAmbiguityMargin = "dialogue.ambiguity_margin"
	KeyServerListen    = "server.listen"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyCompanyID       = "identity.company_id"
	KeyUserID          = "identity.user_id"
)

const (
	DriverTOML   = "toml"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Store    StoreConfig
	Sessions SessionsConfig
	LLM      LLMConfig
	Dialogue DialogueConfig
	Server   ServerConfig
	Log      LogConfig
	// Identity is the default chat identity; it is not validated here.
	Identity IdentityConfig
}

type StoreConfig struct {
	Driver string
	// Path is empty when the store should use its own default location.
	Path string
}

type SessionsConfig struct {
	Driver string
	Path   string
}

type LLMConfig struct {
	BaseURL   string
	Model     string
	APIKeyRef string
	Timeout   time.Duration
}

type DialogueConfig struct {
	MaxRecentTurns  int
	PendingTTL      time.Duration
	PendingMaxTurns int
	MatchThreshold  float64
	AmbiguityMargin float64
}

type ServerConfig struct {
	Listen string
}

type IdentityConfig struct {
	CompanyID string
	UserID    string
}

type LogConfig struct {
	Level  string
	Format string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStoreDriver, DriverTOML)
	v.SetDefault(KeySessionsDriver, DriverTOML)
	v.SetDefault(KeyLLMBaseURL, "https://api.openai.com/v1")
	v.SetDefault(KeyLLMModel, "gpt-4o-mini")
	v.SetDefault(KeyLLMAPIKeyRef, "weddingflow/llm/api_key")
	v.SetDefault(KeyLLMTimeout, 60*time.Second)
	v.SetDefault(KeyMaxRecentTurns, 10)
	v.SetDefault(KeyPendingTTL, 10*time.Minute)
	v.SetDefault(KeyPendingMaxTurns, 3)
	v.SetDefault(KeyMatchThreshold, 0.5)
	v.SetDefault(KeyAmbiguityMargin, 0.1)
	v.SetDefault(KeyServerListen, "127.0.0.1:8088")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
}

// NewViper returns a viper instance with defaults and environment binding.
// When configFile is empty, ~/.weddingflow/config.toml is read if it exists.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	v.SetConfigName(configName)
	v.AddConfigPath(filepath.Join(homeDir, DataDir))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
		SetDefaults(v)
	}

	cfg := Config{
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreDriver))),
			Path:   strings.TrimSpace(v.GetString(KeyStorePath)),
		},
		Sessions: SessionsConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString(KeySessionsDriver))),
			Path:   strings.TrimSpace(v.GetString(KeySessionsPath)),
		},
		LLM: LLMConfig{
			BaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString(KeyLLMBaseURL)), "/"),
			Model:     strings.TrimSpace(v.GetString(KeyLLMModel)),
			APIKeyRef: strings.TrimSpace(v.GetString(KeyLLMAPIKeyRef)),
			Timeout:   v.GetDuration(KeyLLMTimeout),
		},
		Dialogue: DialogueConfig{
			MaxRecentTurns:  v.GetInt(KeyMaxRecentTurns),
			PendingTTL:      v.GetDuration(KeyPendingTTL),
			PendingMaxTurns: v.GetInt(KeyPendingMaxTurns),
			MatchThreshold:  v.GetFloat64(KeyMatchThreshold),
			AmbiguityMargin: v.GetFloat64(KeyAmbiguityMargin),
		},
		Server: ServerConfig{Listen: strings.TrimSpace(v.GetString(KeyServerListen))},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
		Identity: IdentityConfig{
			CompanyID: strings.TrimSpace(v.GetString(KeyCompanyID)),
			UserID:    strings.TrimSpace(v.GetString(KeyUserID)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverTOML, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("%s must be %s, %s or %s, got %q", KeyStoreDriver, DriverTOML, DriverSQLite, DriverMemory, c.Store.Driver))
	}
	switch c.Sessions.Driver {
	case DriverTOML, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("%s must be %s or %s, got %q", KeySessionsDriver, DriverTOML, DriverMemory, c.Sessions.Driver))
	}
	if c.LLM.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyLLMBaseURL))
	}
	if c.LLM.Model == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyLLMModel))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyLLMTimeout))
	}
	if c.Dialogue.MaxRecentTurns <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyMaxRecentTurns))
	}
	if c.Dialogue.PendingTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyPendingTTL))
	}
	if c.Dialogue.PendingMaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyPendingMaxTurns))
	}
	if c.Dialogue.MatchThreshold <= 0 || c.Dialogue.MatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("%s must be in (0,1], got %v", KeyMatchThreshold, c.Dialogue.MatchThreshold))
	}
	if c.Dialogue.AmbiguityMargin <= 0 || c.Dialogue.AmbiguityMargin >= 1 {
		errs = append(errs, fmt.Errorf("%s must be in (0,1), got %v", KeyAmbiguityMargin, c.Dialogue.AmbiguityMargin))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%s must be json or console, got %q", KeyLogFormat, c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
