package coach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chesscoach/internal/analysis"
	"chesscoach/internal/config"
)

func blunderEval() analysis.MoveEvaluation {
	return analysis.MoveEvaluation{
		Ply:            9,
		MoveNumber:     5,
		Color:          "white",
		SAN:            "Qh5",
		UCI:            "d1h5",
		EvalBefore:     30,
		EvalAfter:      -270,
		BestMoveSAN:    "Nf3",
		Delta:          -300,
		Loss:           300,
		Classification: analysis.Blunder,
		Phase:          "opening",
	}
}

func sampleReport() *analysis.Report {
	return &analysis.Report{
		PlayerColor:  "white",
		Depth:        18,
		Accuracy:     62.5,
		BestCount:    3,
		GoodCount:    2,
		Inaccuracies: 1,
		Mistakes:     1,
		Blunders:     1,
		Moves: []analysis.MoveEvaluation{
			{Ply: 1, Color: "white", SAN: "e4", Classification: analysis.Best},
			blunderEval(),
		},
	}
}

func TestExplainMoveUsesLLM(t *testing.T) {
	llm := &mockLLM{response: "That queen sortie was premature."}
	c := New(llm, 1200)

	got := c.ExplainMove(context.Background(), blunderEval())
	if got != "That queen sortie was premature." {
		t.Errorf("got %q", got)
	}
	if llm.promptCount() != 1 {
		t.Errorf("expected 1 LLM call, got %d", llm.promptCount())
	}
}

func TestExplainMoveFallsBackOnError(t *testing.T) {
	llm := &mockLLM{err: errors.New("connection refused")}
	c := New(llm, 1200)

	got := c.ExplainMove(context.Background(), blunderEval())
	if !strings.Contains(got, "Qh5") || !strings.Contains(got, "blunder") {
		t.Errorf("fallback should name the move and severity: %q", got)
	}
}

func TestExplainMoveWithoutLLM(t *testing.T) {
	c := New(nil, 1200)
	got := c.ExplainMove(context.Background(), blunderEval())
	if !strings.Contains(got, "Nf3") {
		t.Errorf("fallback should mention the better move: %q", got)
	}
}

func TestFallbackCoversAllClassifications(t *testing.T) {
	classes := []analysis.Classification{
		analysis.Best, analysis.Good, analysis.Inaccuracy, analysis.Mistake, analysis.Blunder,
	}
	for _, cls := range classes {
		eval := blunderEval()
		eval.Classification = cls
		text := fallbackMove(eval)
		if text == "" {
			t.Errorf("%s: empty fallback", cls)
		}
		if !strings.Contains(text, "Qh5") {
			t.Errorf("%s: fallback should name the move: %q", cls, text)
		}
	}
}

func TestExplainCriticalMomentsPreservesOrder(t *testing.T) {
	llm := &mockLLM{response: "explained"}
	c := New(llm, 1200)

	m1 := blunderEval()
	m2 := blunderEval()
	m2.Ply = 15
	m2.SAN = "Rxe8"

	out := c.ExplainCriticalMoments(context.Background(), []analysis.MoveEvaluation{m1, m2})
	if len(out) != 2 {
		t.Fatalf("got %d explanations", len(out))
	}
	if out[0].Moment.Ply != 9 || out[1].Moment.Ply != 15 {
		t.Errorf("order not preserved: %d, %d", out[0].Moment.Ply, out[1].Moment.Ply)
	}
	for i, e := range out {
		if e.Text != "explained" {
			t.Errorf("moment %d text = %q", i, e.Text)
		}
	}
	if llm.promptCount() != 2 {
		t.Errorf("expected 2 LLM calls, got %d", llm.promptCount())
	}
}

func TestExplainCriticalMomentsDegradesPerMoment(t *testing.T) {
	llm := &mockLLM{err: errors.New("boom")}
	c := New(llm, 1200)

	out := c.ExplainCriticalMoments(context.Background(), []analysis.MoveEvaluation{blunderEval()})
	if len(out) != 1 || out[0].Text == "" {
		t.Fatalf("expected fallback text, got %+v", out)
	}
	if !strings.Contains(out[0].Text, "Qh5") {
		t.Errorf("fallback should name the move: %q", out[0].Text)
	}
}

func TestSummarizeFallback(t *testing.T) {
	c := New(nil, 1200)
	got := c.Summarize(context.Background(), sampleReport(), "White wins by checkmate")

	if !strings.Contains(got, "62.5") {
		t.Errorf("summary should state accuracy: %q", got)
	}
	if !strings.Contains(got, "White wins by checkmate") {
		t.Errorf("summary should state the result: %q", got)
	}
}

func TestBuildMovePrompt(t *testing.T) {
	p := BuildMovePrompt(blunderEval(), 1400)
	for _, want := range []string{"1400", "Qh5", "Nf3", "blunder", "300", "opening"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	p := BuildSummaryPrompt(sampleReport(), "White wins by checkmate", 1400)
	for _, want := range []string{"62.5", "1 blunders", "Qh5", "White wins by checkmate"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestFactory(t *testing.T) {
	cfg := config.DefaultCoachConfig()

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("ollama factory failed: %v", err)
	}
	if _, ok := client.(*OllamaClient); !ok {
		t.Errorf("expected *OllamaClient, got %T", client)
	}

	cfg.Provider = "openai"
	cfg.APIKey = "sk-test"
	client, err = NewClient(cfg)
	if err != nil {
		t.Fatalf("openai factory failed: %v", err)
	}
	if _, ok := client.(*OpenAIClient); !ok {
		t.Errorf("expected *OpenAIClient, got %T", client)
	}

	cfg.Provider = "none"
	client, err = NewClient(cfg)
	if err != nil || client != nil {
		t.Errorf("none should yield nil client, got %v/%v", client, err)
	}

	cfg.Provider = "hal9000"
	if _, err := NewClient(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}
