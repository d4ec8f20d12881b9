package config

import (
	"fmt"
	"time"
)

// ValidProviders lists all supported coach LLM providers. "none" disables
// the LLM entirely and uses rule-based commentary only.
var ValidProviders = []string{"ollama", "openai", "gemini", "none"}

// CoachConfig configures the coaching LLM backend.
type CoachConfig struct {
	// Provider: ollama, openai, gemini, none
	Provider string `yaml:"provider"`

	// Model name understood by the provider
	Model string `yaml:"model"`

	// API key for hosted providers. Usually supplied via environment.
	APIKey string `yaml:"api_key"`

	// Base URL for OpenAI-compatible endpoints
	BaseURL string `yaml:"base_url"`

	// Ollama server address
	OllamaHost string `yaml:"ollama_host"`

	// Request timeout
	Timeout string `yaml:"timeout"`

	// Approximate playing strength of the human, used in prompts
	PlayerElo int `yaml:"player_elo"`
}

// DefaultCoachConfig returns coach defaults: a local Ollama model so the
// app works without any API key.
func DefaultCoachConfig() CoachConfig {
	return CoachConfig{
		Provider:   "ollama",
		Model:      "llama3.2",
		OllamaHost: "http://localhost:11434",
		BaseURL:    "https://api.openai.com/v1",
		Timeout:    "60s",
		PlayerElo:  1200,
	}
}

// GetTimeout returns the LLM request timeout as a duration.
func (c CoachConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Validate checks coach settings.
func (c CoachConfig) Validate() error {
	for _, p := range ValidProviders {
		if c.Provider == p {
			return nil
		}
	}
	return fmt.Errorf("invalid coach provider: %s (valid: %v)", c.Provider, ValidProviders)
}
