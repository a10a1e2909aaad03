package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	DefaultModelName    = "llama-3.1-8b-instant"
	DefaultMaxQuestions = 3
	DefaultOutputRoot   = "games"
	DefaultUsersFile    = "users.json"
	DefaultConfigFile   = "gameforge.toml"
)

// ErrMissingAPIKey is returned when no credential is configured for the
// selected provider. It is fatal before any prompt is shown.
var ErrMissingAPIKey = errors.New("missing provider API key")

type Config struct {
	Provider     string
	GroqAPIKey   string
	OpenAIAPIKey string
	ModelName    string
	MaxQuestions int
	OutputRoot   string
	UsersFile    string
	RedisURL     string // optional; leaderboard falls back to the users file
	Environment  string
	LogLevel     slog.Level
}

// fileConfig holds the optional gameforge.toml overrides. Secrets are never
// read from the file; credentials come from the environment only.
type fileConfig struct {
	Provider     string `toml:"provider,omitempty"`
	Model        string `toml:"model,omitempty"`
	MaxQuestions int    `toml:"max_questions,omitempty"`
	OutputRoot   string `toml:"output_root,omitempty"`
	UsersFile    string `toml:"users_file,omitempty"`
}

// Load builds the configuration from an optional gameforge.toml, a local
// .env file, and the process environment, in increasing precedence. A
// missing credential for the selected provider returns ErrMissingAPIKey
// together with the otherwise valid Config, so subcommands that never call
// a model can still run.
func Load() (*Config, error) {
	// Best effort; a missing .env file is the common case.
	_ = godotenv.Load()

	cfg := &Config{
		Provider:     ProviderGroq,
		ModelName:    DefaultModelName,
		MaxQuestions: DefaultMaxQuestions,
		OutputRoot:   DefaultOutputRoot,
		UsersFile:    DefaultUsersFile,
	}

	if err := applyFile(cfg, DefaultConfigFile); err != nil {
		return nil, err
	}

	cfg.Provider = strings.ToLower(getEnv("GAMEFORGE_PROVIDER", cfg.Provider))
	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ModelName = getEnv("GAMEFORGE_MODEL", cfg.ModelName)
	cfg.OutputRoot = getEnv("GAMEFORGE_OUTPUT_ROOT", cfg.OutputRoot)
	cfg.UsersFile = getEnv("GAMEFORGE_USERS_FILE", cfg.UsersFile)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.Environment = getEnv("ENVIRONMENT", "development")
	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	if v := os.Getenv("GAMEFORGE_MAX_QUESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid GAMEFORGE_MAX_QUESTIONS %q", v)
		}
		cfg.MaxQuestions = n
	}

	if err := cfg.validate(); err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			return cfg, err
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("%w: GROQ_API_KEY is required when using the groq provider", ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required when using the openai provider", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("invalid provider %q (supported: groq, openai)", c.Provider)
	}
	return nil
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GroqAPIKey
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.Provider != "" {
		cfg.Provider = strings.ToLower(fc.Provider)
	}
	if fc.Model != "" {
		cfg.ModelName = fc.Model
	}
	if fc.MaxQuestions > 0 {
		cfg.MaxQuestions = fc.MaxQuestions
	}
	if fc.OutputRoot != "" {
		cfg.OutputRoot = fc.OutputRoot
	}
	if fc.UsersFile != "" {
		cfg.UsersFile = fc.UsersFile
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
