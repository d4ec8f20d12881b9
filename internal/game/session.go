// Package game manages a single human-versus-engine chess session: turn
// order, move legality, move history with FEN snapshots, and outcome
// reporting. Chess rules are delegated to github.com/notnil/chess.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"

	"chesscoach/internal/logging"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the current
	// position or cannot be parsed.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when a move is attempted after the game
	// has ended.
	ErrGameOver = errors.New("game is over")

	// ErrNotYourTurn is returned when the wrong side tries to move.
	ErrNotYourTurn = errors.New("not your turn")
)

// MoveSource produces engine moves for the current position.
type MoveSource interface {
	BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error)
}

// MoveRecord is one played half-move with enough context to replay and
// analyze it later without the engine or the session.
type MoveRecord struct {
	Ply        int       `json:"ply"`         // 1-based half-move index
	MoveNumber int       `json:"move_number"` // 1-based full-move number
	Color      string    `json:"color"`       // "white" or "black"
	SAN        string    `json:"san"`
	UCI        string    `json:"uci"`
	FENBefore  string    `json:"fen_before"`
	FENAfter   string    `json:"fen_after"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsPlayerMove reports whether the record belongs to the side playing
// the given color name.
func (r MoveRecord) IsPlayerMove(playerColor string) bool {
	return r.Color == playerColor
}

// Session is one game between the human and the engine.
type Session struct {
	id          string
	game        *chess.Game
	playerColor chess.Color
	source      MoveSource
	moves       []MoveRecord
	startedAt   time.Time
	finishedAt  time.Time
}

// NewSession starts a fresh game. The engine plays the color opposite
// playerColor and moves are requested from source.
func NewSession(playerColor chess.Color, source MoveSource) *Session {
	s := &Session{
		id:          uuid.NewString(),
		game:        chess.NewGame(),
		playerColor: playerColor,
		source:      source,
		startedAt:   time.Now(),
	}
	logging.Game("new session %s, player plays %s", s.id, ColorName(playerColor))
	return s
}

// ID returns the session's uuid.
func (s *Session) ID() string { return s.id }

// PlayerColor returns the human's color.
func (s *Session) PlayerColor() chess.Color { return s.playerColor }

// EngineColor returns the engine's color.
func (s *Session) EngineColor() chess.Color { return s.playerColor.Other() }

// Position returns the current position.
func (s *Session) Position() *chess.Position { return s.game.Position() }

// Moves returns a copy of the move history.
func (s *Session) Moves() []MoveRecord {
	out := make([]MoveRecord, len(s.moves))
	copy(out, s.moves)
	return out
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// FinishedAt returns when the game ended, zero while in progress.
func (s *Session) FinishedAt() time.Time { return s.finishedAt }

// IsOver reports whether the game has a result.
func (s *Session) IsOver() bool {
	return s.game.Outcome() != chess.NoOutcome
}

// PlayerToMove reports whether it is the human's turn.
func (s *Session) PlayerToMove() bool {
	return s.game.Position().Turn() == s.playerColor
}

// ApplyPlayerMove parses and plays a human move given in UCI or SAN
// notation. The returned record describes the played move.
func (s *Session) ApplyPlayerMove(notation string) (MoveRecord, error) {
	if s.IsOver() {
		return MoveRecord{}, ErrGameOver
	}
	if !s.PlayerToMove() {
		return MoveRecord{}, ErrNotYourTurn
	}

	move, err := s.parseMove(notation)
	if err != nil {
		return MoveRecord{}, fmt.Errorf("%w: %s", ErrIllegalMove, notation)
	}

	rec, err := s.apply(move)
	if err != nil {
		return MoveRecord{}, err
	}
	logging.Game("player: %s (%s)", rec.SAN, rec.UCI)
	return rec, nil
}

// EngineMove asks the move source for the engine's reply and plays it.
func (s *Session) EngineMove(ctx context.Context) (MoveRecord, error) {
	if s.IsOver() {
		return MoveRecord{}, ErrGameOver
	}
	if s.PlayerToMove() {
		return MoveRecord{}, ErrNotYourTurn
	}

	move, err := s.source.BestMove(ctx, s.game.Position())
	if err != nil {
		return MoveRecord{}, fmt.Errorf("engine move: %w", err)
	}
	return s.ApplyEngineMove(move)
}

// ApplyEngineMove plays an engine move that was computed elsewhere. The
// TUI searches on a background goroutine and applies the result here so
// the session is only mutated from the update loop.
func (s *Session) ApplyEngineMove(move *chess.Move) (MoveRecord, error) {
	if s.IsOver() {
		return MoveRecord{}, ErrGameOver
	}
	if s.PlayerToMove() {
		return MoveRecord{}, ErrNotYourTurn
	}

	rec, err := s.apply(move)
	if err != nil {
		return MoveRecord{}, err
	}
	logging.Game("engine: %s (%s)", rec.SAN, rec.UCI)
	return rec, nil
}

// parseMove accepts UCI ("e2e4") first, then SAN ("Nf3").
func (s *Session) parseMove(notation string) (*chess.Move, error) {
	pos := s.game.Position()
	if move, err := (chess.UCINotation{}).Decode(pos, notation); err == nil {
		return move, nil
	}
	return chess.AlgebraicNotation{}.Decode(pos, notation)
}

// apply plays a move on the board and appends its record.
func (s *Session) apply(move *chess.Move) (MoveRecord, error) {
	pos := s.game.Position()
	fenBefore := pos.String()
	san := chess.AlgebraicNotation{}.Encode(pos, move)
	uciStr := chess.UCINotation{}.Encode(pos, move)
	color := pos.Turn()

	if err := s.game.Move(move); err != nil {
		return MoveRecord{}, fmt.Errorf("%w: %s", ErrIllegalMove, uciStr)
	}

	ply := len(s.moves) + 1
	rec := MoveRecord{
		Ply:        ply,
		MoveNumber: (ply + 1) / 2,
		Color:      ColorName(color),
		SAN:        san,
		UCI:        uciStr,
		FENBefore:  fenBefore,
		FENAfter:   s.game.Position().String(),
		Timestamp:  time.Now(),
	}
	s.moves = append(s.moves, rec)

	if s.IsOver() {
		s.finishedAt = time.Now()
		logging.Game("session %s over: %s", s.id, s.OutcomeDescription())
	}
	return rec, nil
}

// Resign ends the game by resignation of the given color.
func (s *Session) Resign(color chess.Color) {
	if s.IsOver() {
		return
	}
	s.game.Resign(color)
	s.finishedAt = time.Now()
	logging.Game("session %s: %s resigned", s.id, ColorName(color))
}

// LegalTargets returns the destination squares of all legal moves from
// the given square. Used by the UI for move highlighting.
func (s *Session) LegalTargets(from chess.Square) []chess.Square {
	var targets []chess.Square
	for _, m := range s.game.ValidMoves() {
		if m.S1() == from {
			targets = append(targets, m.S2())
		}
	}
	return targets
}

// Outcome returns the raw result ("1-0", "0-1", "1/2-1/2", "*").
func (s *Session) Outcome() chess.Outcome { return s.game.Outcome() }

// Method returns how the game ended.
func (s *Session) Method() chess.Method { return s.game.Method() }

// OutcomeDescription returns a player-facing result string such as
// "White wins by checkmate" or "Draw by stalemate".
func (s *Session) OutcomeDescription() string {
	return DescribeOutcome(s.game.Outcome(), s.game.Method())
}

// DescribeOutcome renders an outcome/method pair for display.
func DescribeOutcome(outcome chess.Outcome, method chess.Method) string {
	var winner string
	switch outcome {
	case chess.WhiteWon:
		winner = "White wins"
	case chess.BlackWon:
		winner = "Black wins"
	case chess.Draw:
		winner = "Draw"
	default:
		return "Game in progress"
	}

	var how string
	switch method {
	case chess.Checkmate:
		how = "checkmate"
	case chess.Stalemate:
		how = "stalemate"
	case chess.Resignation:
		how = "resignation"
	case chess.DrawOffer:
		how = "agreement"
	case chess.FiftyMoveRule:
		how = "fifty-move rule"
	case chess.ThreefoldRepetition:
		how = "threefold repetition"
	case chess.InsufficientMaterial:
		how = "insufficient material"
	}

	if how == "" {
		return winner
	}
	return winner + " by " + how
}

// ColorName returns "white" or "black".
func ColorName(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// ParseColor is the inverse of ColorName. Unknown input defaults to
// white.
func ParseColor(name string) chess.Color {
	if name == "black" {
		return chess.Black
	}
	return chess.White
}
