// Package config loads the externally supplied generation settings: the
// service credential, model identifier, and output-size cap. The core
// consumes these values but does not own them.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultModel     = "gpt-4o"
	defaultMaxTokens = 4096
)

// Config holds the completion-service settings. APIKey may legitimately be
// empty; completion calls then fail fast without touching the network.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// Load reads settings from the environment, after loading a .env file from
// the working directory when one exists.
func Load() *Config {
	// A missing .env is not an error; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:    os.Getenv("GENAPP_API_KEY"),
		Model:     os.Getenv("GENAPP_MODEL"),
		BaseURL:   os.Getenv("GENAPP_BASE_URL"),
		MaxTokens: defaultMaxTokens,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if v := os.Getenv("GENAPP_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	return cfg
}
