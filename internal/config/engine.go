package config

import (
	"fmt"
	"time"
)

// Engine strength bounds. Skill level is Stockfish's 0-20 knob (we expose
// 1-20); the Elo range matches Stockfish's UCI_Elo limits.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 20
	MinElo        = 1320
	MaxElo        = 3190
)

// EngineConfig configures the UCI engine subprocess.
type EngineConfig struct {
	// Path to the engine binary. Empty means look up "stockfish" on $PATH.
	Path string `yaml:"path"`

	// Skill level 1-20, used when UseElo is false
	SkillLevel int `yaml:"skill_level"`

	// Elo limit, used when UseElo is true. Clamped to [1320, 3190] when
	// applied to the engine; the stored value is kept as-is.
	Elo    int  `yaml:"elo"`
	UseElo bool `yaml:"use_elo"`

	// Time per engine move in play, milliseconds
	MoveTimeMs int `yaml:"move_time_ms"`

	// Fixed search depth for post-game analysis
	AnalysisDepth int `yaml:"analysis_depth"`

	// Engine process startup/handshake timeout
	StartTimeout string `yaml:"start_timeout"`
}

// DefaultEngineConfig returns engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SkillLevel:    5,
		Elo:           1500,
		MoveTimeMs:    100,
		AnalysisDepth: 18,
		StartTimeout:  "10s",
	}
}

// MoveTime returns the per-move search time as a duration.
func (c EngineConfig) MoveTime() time.Duration {
	if c.MoveTimeMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.MoveTimeMs) * time.Millisecond
}

// GetStartTimeout returns the startup timeout as a duration.
func (c EngineConfig) GetStartTimeout() time.Duration {
	d, err := time.ParseDuration(c.StartTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ClampSkill clamps a skill level into the supported range.
func ClampSkill(level int) int {
	if level < MinSkillLevel {
		return MinSkillLevel
	}
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// ClampElo clamps an Elo target into the engine's supported range.
func ClampElo(elo int) int {
	if elo < MinElo {
		return MinElo
	}
	if elo > MaxElo {
		return MaxElo
	}
	return elo
}

// SkillLabel maps a skill level to a player-facing difficulty label.
func SkillLabel(level int) string {
	switch {
	case level <= 3:
		return "Beginner"
	case level <= 7:
		return "Intermediate"
	case level <= 12:
		return "Advanced"
	case level <= 17:
		return "Expert"
	default:
		return "Master"
	}
}

// Validate checks engine settings.
func (c EngineConfig) Validate() error {
	if c.AnalysisDepth < 1 || c.AnalysisDepth > 40 {
		return fmt.Errorf("analysis_depth must be between 1 and 40, got %d", c.AnalysisDepth)
	}
	if c.MoveTimeMs < 0 {
		return fmt.Errorf("move_time_ms must be non-negative, got %d", c.MoveTimeMs)
	}
	return nil
}
