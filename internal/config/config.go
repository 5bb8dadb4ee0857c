// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	AgentName     string
	AgentSeed     string
	AgentAddress  string // optional; derived from AgentSeed when empty
	Port          string
	AgentEndpoint string
	FrontendURL   string
	LogLevel      string

	Chain     ChainConfig
	Resources ResourceConfig
	RateLimit RateLimitConfig

	StatusInterval   time.Duration
	CollaborationTTL time.Duration
}

// ChainConfig holds the optional EVM chain settings. An empty ProviderURL or
// PrivateKey means progress recording runs in simulated mode.
type ChainConfig struct {
	ProviderURL     string
	PrivateKey      string
	ContractAddress string
}

// ResourceConfig holds settings for the external learning-resource APIs.
type ResourceConfig struct {
	QuizAPIKey  string
	GithubToken string
	HTTPTimeout time.Duration
}

// RateLimitConfig controls throttling of question submissions.
type RateLimitConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	port := getEnv("PORT", "8000")

	cfg := &Config{
		AgentName:     getEnv("AGENT_NAME", "EduAgent"),
		AgentSeed:     getEnv("AGENT_SEED", "edu_agent_seed_phrase_12345"),
		AgentAddress:  getEnv("AGENT_ADDRESS", ""),
		Port:          port,
		AgentEndpoint: getEnv("AGENT_ENDPOINT", "http://localhost:"+port+"/submit"),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		Chain: ChainConfig{
			ProviderURL:     getEnv("WEB3_PROVIDER", ""),
			PrivateKey:      getEnv("PRIVATE_KEY", ""),
			ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
		},
		Resources: ResourceConfig{
			QuizAPIKey:  getEnv("QUIZ_API_KEY", ""),
			GithubToken: getEnv("GITHUB_TOKEN", ""),
			HTTPTimeout: getEnvDuration("RESOURCE_HTTP_TIMEOUT", 15*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: getEnvInt("RATE_LIMIT_REQUESTS", 10),
			WindowDuration:    getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		StatusInterval:   getEnvDuration("STATUS_INTERVAL", time.Minute),
		CollaborationTTL: getEnvDuration("COLLABORATION_TTL", 24*time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.AgentName == "" {
		return fmt.Errorf("AGENT_NAME cannot be empty")
	}
	if c.AgentSeed == "" && c.AgentAddress == "" {
		return fmt.Errorf("AGENT_SEED or AGENT_ADDRESS must be set")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Resources.HTTPTimeout <= 0 {
		return fmt.Errorf("RESOURCE_HTTP_TIMEOUT must be > 0")
	}
	if c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if c.RateLimit.WindowDuration <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}
	if c.StatusInterval <= 0 {
		return fmt.Errorf("STATUS_INTERVAL must be > 0")
	}
	if c.CollaborationTTL <= 0 {
		return fmt.Errorf("COLLABORATION_TTL must be > 0")
	}
	return nil
}

// ChainEnabled returns true if an EVM provider and signing key are configured.
func (c *Config) ChainEnabled() bool {
	return c.Chain.ProviderURL != "" && c.Chain.PrivateKey != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

// SlogLevel maps the LOG_LEVEL string onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(strings.TrimSpace(c.LogLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
