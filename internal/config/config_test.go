package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.SkillLevel != 5 {
		t.Errorf("expected default skill 5, got %d", cfg.Engine.SkillLevel)
	}
	if cfg.Engine.AnalysisDepth != 18 {
		t.Errorf("expected default analysis depth 18, got %d", cfg.Engine.AnalysisDepth)
	}
	if cfg.Engine.MoveTimeMs != 100 {
		t.Errorf("expected default move time 100ms, got %d", cfg.Engine.MoveTimeMs)
	}
	if cfg.Coach.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %s", cfg.Coach.Provider)
	}
}

func TestLoadParsesFileAndKeepsDefaultsForOmitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
engine:
  skill_level: 12
  use_elo: true
  elo: 1800
coach:
  provider: openai
  model: gpt-4o-mini
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.SkillLevel != 12 {
		t.Errorf("skill_level = %d, want 12", cfg.Engine.SkillLevel)
	}
	if !cfg.Engine.UseElo || cfg.Engine.Elo != 1800 {
		t.Errorf("elo settings = %v/%d, want true/1800", cfg.Engine.UseElo, cfg.Engine.Elo)
	}
	if cfg.Coach.Provider != "openai" || cfg.Coach.Model != "gpt-4o-mini" {
		t.Errorf("coach = %s/%s, want openai/gpt-4o-mini", cfg.Coach.Provider, cfg.Coach.Model)
	}

	// Omitted settings keep defaults
	if cfg.Engine.AnalysisDepth != 18 {
		t.Errorf("analysis_depth = %d, want default 18", cfg.Engine.AnalysisDepth)
	}
	if cfg.Coach.OllamaHost != "http://localhost:11434" {
		t.Errorf("ollama_host = %s, want default", cfg.Coach.OllamaHost)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHESSCOACH_ENGINE_PATH", "/opt/stockfish/stockfish")
	t.Setenv("CHESSCOACH_ENGINE_SKILL", "15")
	t.Setenv("CHESSCOACH_COACH_PROVIDER", "none")
	t.Setenv("CHESSCOACH_DB", "/tmp/other.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.Path != "/opt/stockfish/stockfish" {
		t.Errorf("engine path = %s", cfg.Engine.Path)
	}
	if cfg.Engine.SkillLevel != 15 {
		t.Errorf("skill = %d, want 15", cfg.Engine.SkillLevel)
	}
	if cfg.Coach.Provider != "none" {
		t.Errorf("provider = %s, want none", cfg.Coach.Provider)
	}
	if cfg.Storage.DatabasePath != "/tmp/other.db" {
		t.Errorf("db path = %s", cfg.Storage.DatabasePath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Engine.SkillLevel = 9
	cfg.Coach.Provider = "gemini"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Engine.SkillLevel != 9 {
		t.Errorf("skill = %d after round trip, want 9", loaded.Engine.SkillLevel)
	}
	if loaded.Coach.Provider != "gemini" {
		t.Errorf("provider = %s after round trip, want gemini", loaded.Coach.Provider)
	}
}

func TestClamps(t *testing.T) {
	if got := ClampSkill(0); got != 1 {
		t.Errorf("ClampSkill(0) = %d, want 1", got)
	}
	if got := ClampSkill(25); got != 20 {
		t.Errorf("ClampSkill(25) = %d, want 20", got)
	}
	if got := ClampSkill(10); got != 10 {
		t.Errorf("ClampSkill(10) = %d, want 10", got)
	}
	if got := ClampElo(800); got != 1320 {
		t.Errorf("ClampElo(800) = %d, want 1320", got)
	}
	if got := ClampElo(4000); got != 3190 {
		t.Errorf("ClampElo(4000) = %d, want 3190", got)
	}
	if got := ClampElo(2000); got != 2000 {
		t.Errorf("ClampElo(2000) = %d, want 2000", got)
	}
}

func TestSkillLabels(t *testing.T) {
	cases := map[int]string{
		1:  "Beginner",
		3:  "Beginner",
		4:  "Intermediate",
		7:  "Intermediate",
		8:  "Advanced",
		12: "Advanced",
		13: "Expert",
		17: "Expert",
		18: "Master",
		20: "Master",
	}
	for level, want := range cases {
		if got := SkillLabel(level); got != want {
			t.Errorf("SkillLabel(%d) = %s, want %s", level, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Coach.Provider = "skynet"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	cfg = DefaultConfig()
	cfg.Engine.AnalysisDepth = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero analysis depth")
	}
}
