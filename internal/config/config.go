// Package config loads and persists chesscoach configuration.
//
// Configuration lives in <data-dir>/config.yaml where the data directory
// defaults to ~/.chesscoach. Every setting has a sane default so the app
// runs with no config file at all; environment variables (CHESSCOACH_*)
// override values from the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all chesscoach configuration.
type Config struct {
	// Engine configuration (binary, strength, search limits)
	Engine EngineConfig `yaml:"engine"`

	// Coach configuration (LLM backend selection)
	Coach CoachConfig `yaml:"coach"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures the game archive.
type StorageConfig struct {
	// Path to the sqlite database. Empty means <data-dir>/games.db.
	DatabasePath string `yaml:"database_path"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	// Board orientation: show the board from the player's side
	FlipWithPlayer bool `yaml:"flip_with_player"`

	// Live rule-based coaching tips during play
	LiveTips bool `yaml:"live_tips"`

	// Background eval bar updates during play
	EvalBar bool `yaml:"eval_bar"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine:  DefaultEngineConfig(),
		Coach:   DefaultCoachConfig(),
		Storage: StorageConfig{},
		UI: UIConfig{
			FlipWithPlayer: true,
			LiveTips:       true,
			EvalBar:        true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDataDir returns the default data directory (~/.chesscoach).
// CHESSCOACH_HOME overrides it, which the tests rely on.
func DefaultDataDir() string {
	if dir := os.Getenv("CHESSCOACH_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chesscoach"
	}
	return filepath.Join(home, ".chesscoach")
}

// Path returns the config file path inside a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields
// defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes configuration to a YAML file, creating the directory if
// needed. Used for first-run scaffolding.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CHESSCOACH_ENGINE_PATH"); path != "" {
		c.Engine.Path = path
	}
	if v := os.Getenv("CHESSCOACH_ENGINE_SKILL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.SkillLevel = n
		}
	}
	if v := os.Getenv("CHESSCOACH_ENGINE_ELO"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.Elo = n
		}
	}
	if provider := os.Getenv("CHESSCOACH_COACH_PROVIDER"); provider != "" {
		c.Coach.Provider = provider
	}
	if model := os.Getenv("CHESSCOACH_COACH_MODEL"); model != "" {
		c.Coach.Model = model
	}
	if host := os.Getenv("CHESSCOACH_OLLAMA_HOST"); host != "" {
		c.Coach.OllamaHost = host
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Coach.APIKey == "" {
		c.Coach.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.Coach.Provider == "gemini" {
		c.Coach.APIKey = key
	}
	if path := os.Getenv("CHESSCOACH_DB"); path != "" {
		c.Storage.DatabasePath = path
	}
}

// DatabasePath returns the resolved sqlite path for a data directory.
func (c *Config) DatabasePath(dataDir string) string {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath
	}
	return filepath.Join(dataDir, "games.db")
}

// Validate checks the configuration for values that would fail later in
// a confusing way.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Coach.Validate()
}
