// README: Config loader with env defaults for HTTP, LLM providers, Maps, DB, Redis and logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AIConfig struct {
	GeminiKey     string
	GeminiModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	// ProviderOrder lists provider names in the order they are tried.
	ProviderOrder []string
	Timeout       time.Duration
	MockDelay     time.Duration
}

// KeyReport describes the AI key configuration without exposing key material.
type KeyReport struct {
	HasGeminiKey    bool     `json:"has_gemini_key"`
	HasOpenAIKey    bool     `json:"has_openai_key"`
	GeminiKeyLength int      `json:"gemini_key_length"`
	OpenAIKeyLength int      `json:"openai_key_length"`
	ProviderOrder   []string `json:"provider_order"`
}

func (c AIConfig) Report() KeyReport {
	order := c.ProviderOrder
	if order == nil {
		order = []string{}
	}
	return KeyReport{
		HasGeminiKey:    c.GeminiKey != "",
		HasOpenAIKey:    c.OpenAIKey != "",
		GeminiKeyLength: len(c.GeminiKey),
		OpenAIKeyLength: len(c.OpenAIKey),
		ProviderOrder:   order,
	}
}

type Config struct {
	Env  string
	HTTP struct {
		Addr           string
		CORSOrigins    []string
		RequestTimeout time.Duration
	}
	AI   AIConfig
	Maps struct {
		APIKey string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Log struct {
		Level string
	}
}

// LoadDotEnv reads .env.local and then .env from the working directory.
// Variables already present in the environment are never overwritten.
// Missing files are skipped; unreadable or malformed ones are an error.
func LoadDotEnv() error {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("VOYAGE_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("VOYAGE_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envList("VOYAGE_CORS_ORIGINS", []string{"http://localhost:3000"})
	cfg.HTTP.RequestTimeout = envOrDefaultDuration("VOYAGE_REQUEST_TIMEOUT", 150*time.Second)

	cfg.AI.GeminiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.AI.GeminiModel = envOrDefault("VOYAGE_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.OpenAIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.AI.OpenAIModel = envOrDefault("VOYAGE_OPENAI_MODEL", "gpt-4o")
	cfg.AI.OpenAIBaseURL = envOrDefault("VOYAGE_OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.AI.ProviderOrder = envList("VOYAGE_PROVIDER_ORDER", []string{"openai", "gemini"})
	cfg.AI.Timeout = envOrDefaultDuration("VOYAGE_LLM_TIMEOUT", 60*time.Second)
	cfg.AI.MockDelay = envOrDefaultDuration("VOYAGE_MOCK_DELAY", time.Second)

	cfg.Maps.APIKey = strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY"))
	cfg.DB.DSN = os.Getenv("VOYAGE_DB_DSN")
	cfg.Redis.Addr = os.Getenv("VOYAGE_REDIS_ADDR")
	cfg.Log.Level = envOrDefault("VOYAGE_LOG_LEVEL", "info")
	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envOrDefaultDuration accepts Go duration strings ("1500ms") or bare seconds ("3").
func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := envOrDefaultInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
