package analysis

import (
	"context"
	"testing"

	"chesscoach/internal/engine"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		loss int
		want Classification
	}{
		{0, Best},
		{9, Best},
		{10, Good},
		{49, Good},
		{50, Inaccuracy},
		{99, Inaccuracy},
		{100, Mistake},
		{199, Mistake},
		{200, Blunder},
		{500, Blunder},
	}
	for _, c := range cases {
		if got := Classify(c.loss); got != c.want {
			t.Errorf("Classify(%d) = %v, want %v", c.loss, got, c.want)
		}
	}
}

// A move that improves the mover's evaluation has zero loss and grades
// Best, however large the swing.
func TestEvalGainIsNotLoss(t *testing.T) {
	recs := makeRecords(t, "e2e4")

	eval := gradeMove(recs[0], 20, 270, "e4")
	if eval.Delta != 250 {
		t.Fatalf("delta = %d, want 250", eval.Delta)
	}
	if eval.Loss != 0 {
		t.Errorf("loss = %d, want 0", eval.Loss)
	}
	if eval.Classification != Best {
		t.Errorf("classification = %v, want Best", eval.Classification)
	}
}

func TestAnalyzeGradesBothSides(t *testing.T) {
	recs := makeRecords(t, "e2e4", "e7e5")

	// Scores per searched position: start, after e4, after e5
	eval := &seqEvaluator{scores: []int{20, 30, 25}}
	a := New(eval, 18)

	report, err := a.Analyze(context.Background(), recs, "white", nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if eval.calls != 3 {
		t.Errorf("expected 3 searches, got %d", eval.calls)
	}

	white := report.Moves[0]
	if white.EvalBefore != 20 || white.EvalAfter != 30 {
		t.Errorf("white evals = %d/%d, want 20/30", white.EvalBefore, white.EvalAfter)
	}
	if white.Delta != 10 || white.Loss != 0 || white.Classification != Best {
		t.Errorf("white grading = %+v", white)
	}
	if white.BestMoveSAN == "" {
		t.Error("white move should have a best-move suggestion")
	}

	// Black's delta runs the other way: before-after
	black := report.Moves[1]
	if black.Delta != 30-25 || black.Classification != Best {
		t.Errorf("black grading = %+v", black)
	}
}

func TestAnalyzeBlackBlunder(t *testing.T) {
	recs := makeRecords(t, "e2e4", "f7f6")

	// Black's move takes the white-POV eval from 0 to +300
	eval := &seqEvaluator{scores: []int{0, 0, 300}}
	a := New(eval, 18)

	report, err := a.Analyze(context.Background(), recs, "black", nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	black := report.Moves[1]
	if black.Delta != -300 || black.Loss != 300 {
		t.Errorf("delta/loss = %d/%d, want -300/300", black.Delta, black.Loss)
	}
	if black.Classification != Blunder {
		t.Errorf("classification = %v, want blunder", black.Classification)
	}
	if report.Blunders != 1 || report.Accuracy != 0.0 {
		t.Errorf("report = blunders %d accuracy %.1f, want 1/0.0", report.Blunders, report.Accuracy)
	}
}

func TestAnalyzeCheckmateFinalPosition(t *testing.T) {
	// Scholar's mate: final position is checkmate, which the engine is
	// never asked to search
	recs := makeRecords(t, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")

	eval := &seqEvaluator{scores: []int{20, 20, 30, 30, 40, 40, 50}}
	a := New(eval, 18)

	report, err := a.Analyze(context.Background(), recs, "white", nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if eval.calls != len(recs) {
		t.Errorf("expected %d searches (no search on mate), got %d", len(recs), eval.calls)
	}

	last := report.Moves[len(report.Moves)-1]
	if last.EvalAfter != engine.MateScore {
		t.Errorf("mating move eval_after = %d, want %d", last.EvalAfter, engine.MateScore)
	}
	if last.Classification != Best {
		t.Errorf("mating move classified %v, want best", last.Classification)
	}
}

func TestAnalyzeProgress(t *testing.T) {
	recs := makeRecords(t, "e2e4", "e7e5")
	eval := &seqEvaluator{scores: []int{0, 0, 0}}
	a := New(eval, 12)

	var updates []int
	var total int
	_, err := a.Analyze(context.Background(), recs, "white", func(done, n int) {
		updates = append(updates, done)
		total = n
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(updates) == 0 || updates[len(updates)-1] != total {
		t.Errorf("progress should end at total, got %v", updates)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := New(&seqEvaluator{}, 18)
	if _, err := a.Analyze(context.Background(), nil, "white", nil); err == nil {
		t.Error("expected error for empty move list")
	}
}

func TestAccuracyRounding(t *testing.T) {
	moves := []MoveEvaluation{
		{Color: "white", Classification: Best},
		{Color: "white", Classification: Mistake},
		{Color: "white", Classification: Blunder},
		{Color: "black", Classification: Best},
	}
	r := buildReport(moves, "white", 18)
	if r.Accuracy != 33.3 {
		t.Errorf("accuracy = %.2f, want 33.3", r.Accuracy)
	}
}

func TestCriticalMoments(t *testing.T) {
	moves := []MoveEvaluation{
		{Ply: 1, Color: "white", Classification: Good, Loss: 20},
		{Ply: 3, Color: "white", Classification: Mistake, Loss: 150},
		{Ply: 5, Color: "white", Classification: Blunder, Loss: 400},
		{Ply: 7, Color: "white", Classification: Blunder, Loss: 250},
		{Ply: 2, Color: "black", Classification: Blunder, Loss: 900},
	}
	r := buildReport(moves, "white", 18)

	moments := r.CriticalMoments(2)
	if len(moments) != 2 {
		t.Fatalf("expected 2 moments, got %d", len(moments))
	}
	if moments[0].Ply != 5 || moments[1].Ply != 7 {
		t.Errorf("moments ordered %d,%d, want plies 5,7", moments[0].Ply, moments[1].Ply)
	}

	all := r.CriticalMoments(10)
	if len(all) != 3 {
		t.Errorf("expected 3 player moments, got %d", len(all))
	}
}
