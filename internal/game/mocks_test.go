package game

import (
	"context"
	"fmt"

	"github.com/notnil/chess"
)

// scriptedSource replays a fixed sequence of UCI moves as "engine"
// replies.
type scriptedSource struct {
	moves []string
	next  int
}

func (s *scriptedSource) BestMove(_ context.Context, pos *chess.Position) (*chess.Move, error) {
	if s.next >= len(s.moves) {
		return nil, fmt.Errorf("script exhausted after %d moves", s.next)
	}
	move, err := chess.UCINotation{}.Decode(pos, s.moves[s.next])
	if err != nil {
		return nil, fmt.Errorf("bad scripted move %q: %w", s.moves[s.next], err)
	}
	s.next++
	return move, nil
}

// failingSource always errors, for engine-failure paths.
type failingSource struct{}

func (failingSource) BestMove(context.Context, *chess.Position) (*chess.Move, error) {
	return nil, fmt.Errorf("engine unavailable")
}
