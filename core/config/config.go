package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("LLM_API_KEY is required")

type Config struct {
	OTel    OTelConfig
	LLM     LLMConfig
	Prompt  PromptConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Env     string
	Port    string
	Version string
	NodeID  int64 // Snowflake node, 0-1023; unique per replica
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider    string // "gemini", "openai" or "anthropic"
	APIKey      string
	BaseURL     string // Optional: routes calls through a custom endpoint
	Model       string
	MaxTokens   int
	Temperature *float64 // nil = model default
}

type PromptSourceKind string

const (
	PromptSourceFile  PromptSourceKind = "file"
	PromptSourceRedis PromptSourceKind = "redis"
)

type PromptConfig struct {
	Source        PromptSourceKind
	File          string
	RedisKey      string
	ReloadChannel string
}

type RedisConfig struct {
	URL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables.
// In development, a .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	if getEnv("RESPONDO_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:     getEnv("RESPONDO_ENV", "development"),
		Port:    getEnv("PORT", "8000"),
		Version: getEnv("RESPONDO_VERSION", "1.0.0"),
		NodeID:  int64(getEnvInt("NODE_ID", 1)),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "respondo"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			APIKey:      getEnv("LLM_API_KEY", ""),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			Model:       getEnv("LLM_MODEL", ""),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1024),
			Temperature: getEnvFloatPtr("LLM_TEMPERATURE"),
		},
		Prompt: PromptConfig{
			Source:        PromptSourceKind(strings.ToLower(getEnv("PROMPT_SOURCE", string(PromptSourceFile)))),
			File:          getEnv("PROMPT_FILE", "prompts/system_prompt.txt"),
			RedisKey:      getEnv("PROMPT_REDIS_KEY", "respondo:system_prompt"),
			ReloadChannel: getEnv("PROMPT_RELOAD_CHANNEL", "respondo:prompt_reload"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if cfg.LLM.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	if cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return Config{}, fmt.Errorf("NODE_ID must be between 0 and 1023, got %d", cfg.NodeID)
	}

	switch cfg.Prompt.Source {
	case PromptSourceFile:
	case PromptSourceRedis:
		if !cfg.Redis.Enabled() {
			return Config{}, fmt.Errorf("PROMPT_SOURCE=redis requires REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("unsupported PROMPT_SOURCE: %s", cfg.Prompt.Source)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// CustomEndpoint reports whether model calls are routed through a non-default base URL.
func (c LLMConfig) CustomEndpoint() bool {
	return c.BaseURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloatPtr(key string) *float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return &f
		}
	}
	return nil
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
