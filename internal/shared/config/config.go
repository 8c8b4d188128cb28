package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	DatabaseURL     string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	LLMProvider    string
	LLMModel       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAITimeout  time.Duration
	RephraseRate   float64
	RephraseBurst  int
	RephraseMaxLen int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required in production")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required in production")
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env != "production" {
		secret = "dev-secret"
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          secret,
		JWTAccessTTL:       getDuration("JWT_ACCESS_TTL", 30*time.Minute),
		JWTRefreshTTL:      getDuration("JWT_REFRESH_TTL", 24*time.Hour),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeout:      time.Duration(getInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		RephraseRate:       float64(getInt("REPHRASE_RATE_PER_MINUTE", 10)) / 60,
		RephraseBurst:      getInt("REPHRASE_BURST", 3),
		RephraseMaxLen:     getInt("REPHRASE_MAX_CHARS", 2000),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// Validate reports settings that make the process unsafe to start.
func (c Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, ErrMissingDatabaseURL)
	}
	if c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	return errors.Join(errs...)
}

// UsesMemoryStores reports whether repositories fall back to process memory.
func (c Config) UsesMemoryStores() bool {
	return c.DatabaseURL == "" && (c.Env == "dev" || c.Env == "local")
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
