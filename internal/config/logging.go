package config

// LoggingConfig configures the categorized debug logger. The same block
// is read independently by internal/logging to avoid an import cycle.
type LoggingConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`

	// Master switch for file logging. Off means no log files at all.
	DebugMode bool `yaml:"debug_mode"`

	// Per-category toggles (engine, game, analysis, coach, store, ui).
	// Categories absent from the map default to enabled.
	Categories map[string]bool `yaml:"categories"`

	// Emit JSON lines instead of text
	JSONFormat bool `yaml:"json_format"`
}
