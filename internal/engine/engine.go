// Package engine adapts an external UCI chess engine (Stockfish) for play
// and analysis. The UCI wire protocol itself is handled by
// github.com/notnil/chess/uci; this package owns process lifecycle,
// strength configuration, and score normalization.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"

	"chesscoach/internal/config"
	"chesscoach/internal/logging"
)

// MateScore is the sentinel centipawn value used for forced mates, from
// the point of view of the side delivering mate.
const MateScore = 10000

var (
	// ErrNotRunning is returned when a search is requested before Start
	// or after Close.
	ErrNotRunning = errors.New("engine not running")

	// ErrNoBestMove is returned when the engine produced no best move,
	// which happens on terminal positions.
	ErrNoBestMove = errors.New("engine returned no best move")
)

// Score is an engine evaluation normalized to White's perspective.
type Score struct {
	// CP is centipawns, positive meaning White is better. Forced mates
	// are mapped to ±MateScore.
	CP int

	// Mate is moves until mate when a forced mate was found, signed the
	// same way as CP. Zero when no mate was reported.
	Mate int
}

// IsMate reports whether the score is a forced mate.
func (s Score) IsMate() bool { return s.Mate != 0 }

// SearchResult is the outcome of a single search.
type SearchResult struct {
	BestMove *chess.Move
	Score    Score
	Depth    int
}

// Engine drives one UCI engine subprocess. Searches are serialized; the
// engine can only think about one position at a time.
type Engine struct {
	cfg config.EngineConfig

	mu      sync.Mutex
	eng     *uci.Engine
	name    string
	running bool
}

// New creates an engine adapter. The subprocess is not started until
// Start is called.
func New(cfg config.EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// resolveBinary finds the engine binary: explicit config path wins, then
// "stockfish" on $PATH.
func resolveBinary(cfgPath string) (string, error) {
	if cfgPath != "" {
		if _, err := exec.LookPath(cfgPath); err != nil {
			return "", fmt.Errorf("engine binary %q not found or not executable: %w", cfgPath, err)
		}
		return cfgPath, nil
	}
	path, err := exec.LookPath("stockfish")
	if err != nil {
		return "", fmt.Errorf("stockfish not found on PATH; install it or set engine.path in config.yaml: %w", err)
	}
	return path, nil
}

// Start launches the engine subprocess, performs the UCI handshake, and
// applies the configured strength.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	path, err := resolveBinary(e.cfg.Path)
	if err != nil {
		return err
	}

	timer := logging.StartTimer(logging.CategoryEngine, "engine start")
	eng, err := uci.New(path)
	if err != nil {
		return fmt.Errorf("failed to start engine %s: %w", path, err)
	}

	if err := runCtx(ctx, eng, uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return fmt.Errorf("engine handshake failed: %w", err)
	}
	timer.Stop()

	e.eng = eng
	e.name = eng.ID()["name"]
	e.running = true

	logging.Engine("started %s (%s)", e.name, path)

	if err := e.applyStrengthLocked(ctx); err != nil {
		e.closeLocked()
		return err
	}

	return nil
}

// Name returns the engine's self-reported name, empty before Start.
func (e *Engine) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// applyStrengthLocked sends the strength options for the current config.
func (e *Engine) applyStrengthLocked(ctx context.Context) error {
	var cmds []uci.Cmd
	if e.cfg.UseElo {
		cmds = eloOptions(e.cfg.Elo)
		logging.Engine("strength: elo limit %d (clamped %d)", e.cfg.Elo, config.ClampElo(e.cfg.Elo))
	} else {
		cmds = skillOptions(e.cfg.SkillLevel)
		logging.Engine("strength: skill level %d", config.ClampSkill(e.cfg.SkillLevel))
	}
	if err := runCtx(ctx, e.eng, cmds...); err != nil {
		return fmt.Errorf("failed to set engine strength: %w", err)
	}
	return nil
}

// skillOptions builds the setoption commands for skill-level mode.
func skillOptions(level int) []uci.Cmd {
	return []uci.Cmd{
		uci.CmdSetOption{Name: "UCI_LimitStrength", Value: "false"},
		uci.CmdSetOption{Name: "Skill Level", Value: strconv.Itoa(config.ClampSkill(level))},
	}
}

// eloOptions builds the setoption commands for Elo-limit mode. The Elo is
// clamped to the engine's supported range at send time; the configured
// value is left alone.
func eloOptions(elo int) []uci.Cmd {
	return []uci.Cmd{
		uci.CmdSetOption{Name: "UCI_LimitStrength", Value: "true"},
		uci.CmdSetOption{Name: "UCI_Elo", Value: strconv.Itoa(config.ClampElo(elo))},
	}
}

// SetStrength reconfigures strength on a running engine. Used by the UI's
// +/- keys and by config live reload.
func (e *Engine) SetStrength(ctx context.Context, cfg config.EngineConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.SkillLevel = cfg.SkillLevel
	e.cfg.Elo = cfg.Elo
	e.cfg.UseElo = cfg.UseElo
	e.cfg.MoveTimeMs = cfg.MoveTimeMs

	if !e.running {
		return nil
	}
	return e.applyStrengthLocked(ctx)
}

// NewGame tells the engine to forget the previous game.
func (e *Engine) NewGame(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return ErrNotRunning
	}
	if err := runCtx(ctx, e.eng, uci.CmdUCINewGame, uci.CmdIsReady); err != nil {
		return fmt.Errorf("ucinewgame failed: %w", err)
	}
	return nil
}

// BestMove searches the position for the configured move time and returns
// the engine's choice. Used during play.
func (e *Engine) BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error) {
	res, err := e.search(ctx, pos, uci.CmdGo{MoveTime: e.cfg.MoveTime()})
	if err != nil {
		return nil, err
	}
	if res.BestMove == nil {
		return nil, ErrNoBestMove
	}
	return res.BestMove, nil
}

// Evaluate searches the position to the given depth and returns the
// normalized score. depth <= 0 uses the configured analysis depth.
func (e *Engine) Evaluate(ctx context.Context, pos *chess.Position, depth int) (Score, error) {
	if depth <= 0 {
		depth = e.cfg.AnalysisDepth
	}
	res, err := e.search(ctx, pos, uci.CmdGo{Depth: depth})
	if err != nil {
		return Score{}, err
	}
	return res.Score, nil
}

// Analyse runs one fixed-depth search returning both the best move and
// the score, so the post-game analyzer pays for a single search per
// position. depth <= 0 uses the configured analysis depth.
func (e *Engine) Analyse(ctx context.Context, pos *chess.Position, depth int) (SearchResult, error) {
	if depth <= 0 {
		depth = e.cfg.AnalysisDepth
	}
	return e.search(ctx, pos, uci.CmdGo{Depth: depth})
}

func (e *Engine) search(ctx context.Context, pos *chess.Position, goCmd uci.CmdGo) (SearchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return SearchResult{}, ErrNotRunning
	}

	timer := logging.StartTimer(logging.CategoryEngine, "search")
	err := runCtx(ctx, e.eng, uci.CmdPosition{Position: pos}, goCmd)
	timer.Stop()
	if err != nil {
		return SearchResult{}, fmt.Errorf("search failed: %w", err)
	}

	results := e.eng.SearchResults()
	score := whitePOV(&results.Info.Score, pos.Turn())

	logging.EngineDebug("search done: depth=%d best=%v cp=%d mate=%d",
		results.Info.Depth, results.BestMove, score.CP, score.Mate)

	return SearchResult{
		BestMove: results.BestMove,
		Score:    score,
		Depth:    results.Info.Depth,
	}, nil
}

// whitePOV converts a side-to-move-relative UCI score to White's
// perspective. Mate distances become the ±MateScore sentinel.
func whitePOV(score *uci.Score, turn chess.Color) Score {
	if score == nil {
		return Score{}
	}

	var s Score
	if score.Mate != 0 {
		s.Mate = score.Mate
		if score.Mate > 0 {
			s.CP = MateScore
		} else {
			s.CP = -MateScore
		}
	} else {
		s.CP = score.CP
	}

	if turn == chess.Black {
		s.CP = -s.CP
		s.Mate = -s.Mate
	}
	return s
}

// runCtx runs engine commands on a goroutine so the caller can honor
// context cancellation. On cancel a stop command is issued; the engine
// then finishes the current go command quickly.
func runCtx(ctx context.Context, eng *uci.Engine, cmds ...uci.Cmd) error {
	done := make(chan error, 1)
	go func() {
		done <- eng.Run(cmds...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = eng.Run(uci.CmdStop)
		<-done
		return ctx.Err()
	}
}

// Close shuts the engine down. Safe to call twice.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked()
}

func (e *Engine) closeLocked() error {
	if !e.running {
		return nil
	}
	e.running = false
	logging.Engine("stopping %s", e.name)
	if err := e.eng.Close(); err != nil {
		return fmt.Errorf("engine close: %w", err)
	}
	return nil
}
