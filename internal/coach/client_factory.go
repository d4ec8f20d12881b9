package coach

import (
	"fmt"

	"chesscoach/internal/config"
	"chesscoach/internal/logging"
)

// NewClient builds the LLM client selected by the config. Provider
// "none" returns a nil client; the Coach treats that as
// rule-based-only mode.
func NewClient(cfg config.CoachConfig) (LLMClient, error) {
	switch cfg.Provider {
	case "ollama":
		logging.Coach("backend: ollama model=%s host=%s", cfg.Model, cfg.OllamaHost)
		return NewOllamaClient(cfg.OllamaHost, cfg.Model, cfg.GetTimeout()), nil

	case "openai":
		logging.Coach("backend: openai model=%s", cfg.Model)
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.GetTimeout()), nil

	case "gemini":
		logging.Coach("backend: gemini model=%s", cfg.Model)
		return NewGeminiClient(cfg.APIKey, cfg.Model, cfg.GetTimeout())

	case "none", "":
		logging.Coach("backend: rule-based only")
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown coach provider: %s (valid: %v)", cfg.Provider, config.ValidProviders)
	}
}
