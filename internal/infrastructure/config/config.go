// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up when no --config
// flag is given.
const DefaultConfigFile = "dex.yaml"

// Config holds static infrastructure configuration (read-only after init).
// It is assembled once at startup and injected into every constructor.
type Config struct {
	LLM     LLMConfig     `yaml:"llm,omitempty"`
	PokeAPI PokeAPIConfig `yaml:"pokeapi,omitempty"`
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Answer  AnswerConfig  `yaml:"answer,omitempty"`
}

// LLMConfig holds configuration for the chat-completion provider.
type LLMConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"` // Any OpenAI-compatible endpoint
	Model   string `yaml:"model,omitempty"`
}

// PokeAPIConfig holds configuration for the upstream data API.
type PokeAPIConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the request timeout as a duration.
func (c PokeAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SQLiteConfig holds configuration for the SQLite record cache.
type SQLiteConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// AnswerConfig controls answer generation.
type AnswerConfig struct {
	// Locale selects the flavor-text language tag and the language the
	// model is asked to answer in (PokeAPI tags: en, ja, zh-Hans, ...).
	Locale string `yaml:"locale,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		PokeAPI: PokeAPIConfig{
			BaseURL:        "https://pokeapi.co/api/v2",
			TimeoutSeconds: 10,
		},
		SQLite: SQLiteConfig{
			Path: "dex.db",
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Answer: AnswerConfig{
			Locale: "en",
		},
	}
}

// Load loads configuration from the given file path. A missing file is
// not an error: defaults plus environment overrides apply, so the
// server can start with nothing but OPENAI_API_KEY set.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv("DEX_LLM_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}
	if addr := os.Getenv("DEX_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("DEX_DB_PATH"); path != "" {
		c.SQLite.Path = path
	}
}
