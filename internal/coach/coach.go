package coach

import (
	"context"

	"golang.org/x/sync/errgroup"

	"chesscoach/internal/analysis"
	"chesscoach/internal/logging"
)

// maxConcurrentExplanations bounds parallel LLM calls when explaining
// several moments at once.
const maxConcurrentExplanations = 3

// Coach produces commentary for moves and games. It never returns an
// error: when the LLM backend is missing or fails, the rule-based
// fallback answers instead.
type Coach struct {
	client    LLMClient
	playerElo int
}

// New creates a coach. client may be nil for rule-based-only mode.
func New(client LLMClient, playerElo int) *Coach {
	return &Coach{client: client, playerElo: playerElo}
}

// HasLLM reports whether an LLM backend is configured.
func (c *Coach) HasLLM() bool { return c.client != nil }

// ExplainMove returns commentary for one graded move.
func (c *Coach) ExplainMove(ctx context.Context, eval analysis.MoveEvaluation) string {
	if c.client == nil {
		return fallbackMove(eval)
	}

	text, err := c.client.CompleteWithSystem(ctx, systemPrompt, BuildMovePrompt(eval, c.playerElo))
	if err != nil {
		logging.CoachWarn("move explanation fell back to rules: %v", err)
		return fallbackMove(eval)
	}
	return text
}

// MomentExplanation pairs a critical moment with its commentary.
type MomentExplanation struct {
	Moment analysis.MoveEvaluation
	Text   string
}

// ExplainCriticalMoments explains the given moments, preserving their
// order. LLM calls run concurrently with bounded parallelism; any
// failure degrades that moment to rule-based text.
func (c *Coach) ExplainCriticalMoments(ctx context.Context, moments []analysis.MoveEvaluation) []MomentExplanation {
	out := make([]MomentExplanation, len(moments))
	for i, m := range moments {
		out[i].Moment = m
	}

	if c.client == nil {
		for i := range out {
			out[i].Text = fallbackMove(out[i].Moment)
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExplanations)
	for i := range out {
		g.Go(func() error {
			out[i].Text = c.ExplainMove(gctx, out[i].Moment)
			return nil
		})
	}
	// Workers never return errors; failures degrade per-moment
	_ = g.Wait()

	return out
}

// Summarize returns a whole-game summary.
func (c *Coach) Summarize(ctx context.Context, report *analysis.Report, outcome string) string {
	if c.client == nil {
		return fallbackSummary(report, outcome)
	}

	text, err := c.client.CompleteWithSystem(ctx, systemPrompt, BuildSummaryPrompt(report, outcome, c.playerElo))
	if err != nil {
		logging.CoachWarn("summary fell back to rules: %v", err)
		return fallbackSummary(report, outcome)
	}
	return text
}
