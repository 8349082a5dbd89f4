package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/discochess/ruleval"
)

func TestCompareIdenticalRulesets(t *testing.T) {
	scores := []float64{120, -80, 0, 300, -250, 15}

	c, err := Compare("a", scores, "b", scores)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if c.SignAgreement != 1 {
		t.Errorf("SignAgreement = %v, want 1", c.SignAgreement)
	}
	if c.MeanAbsDiff != 0 {
		t.Errorf("MeanAbsDiff = %v, want 0", c.MeanAbsDiff)
	}
	if math.Abs(c.Correlation-1) > 1e-9 {
		t.Errorf("Correlation = %v, want 1", c.Correlation)
	}
	if c.EloDelta != 0 {
		t.Errorf("EloDelta = %v, want 0 (all ties)", c.EloDelta)
	}
}

func TestCompareOptimisticRuleset(t *testing.T) {
	base := []float64{100, -50, 200, -300, 40, 0, 75, -120}
	shifted := make([]float64, len(base))
	for i, s := range base {
		shifted[i] = s + 500
	}

	c, err := Compare("shifted", shifted, "base", base)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if c.EloDelta <= 0 {
		t.Errorf("EloDelta = %v, want positive for uniformly higher scores", c.EloDelta)
	}
	if c.MeanAbsDiff != 500 {
		t.Errorf("MeanAbsDiff = %v, want 500", c.MeanAbsDiff)
	}
	if math.Abs(c.Correlation-1) > 1e-9 {
		t.Errorf("Correlation = %v, want 1 for a constant shift", c.Correlation)
	}
}

func TestCompareSignAgreement(t *testing.T) {
	// Two positions agree (clear White edge, clear Black edge), one
	// disagrees, one is inside the draw margin for both.
	s1 := []float64{200, -150, 90, 10}
	s2 := []float64{180, -220, -95, -20}

	c, err := Compare("a", s1, "b", s2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if c.SignAgreement != 0.75 {
		t.Errorf("SignAgreement = %v, want 0.75", c.SignAgreement)
	}
}

func TestCompareMismatchedLengths(t *testing.T) {
	if _, err := Compare("a", []float64{1}, "b", []float64{1, 2}); err == nil {
		t.Error("Compare with mismatched lengths = nil error, want error")
	}
	if _, err := Compare("a", nil, "b", nil); err == nil {
		t.Error("Compare with empty samples = nil error, want error")
	}
}

func TestSummaryMentionsBothRulesets(t *testing.T) {
	c, err := Compare("shannon1950", []float64{10, 20}, "fruit2005", []float64{15, 25})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	s := c.Summary()
	if !strings.Contains(s, "shannon1950") || !strings.Contains(s, "fruit2005") {
		t.Errorf("Summary missing ruleset names: %q", s)
	}
}

func TestScoreAll(t *testing.T) {
	preset, err := ruleval.WithPreset("shannon1950")
	if err != nil {
		t.Fatalf("WithPreset: %v", err)
	}
	eval, err := ruleval.New(preset)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eval.Close()

	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3",
	}
	scores, err := ScoreAll(context.Background(), eval, fens, 2)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	if len(scores) != len(fens) {
		t.Fatalf("ScoreAll returned %d scores, want %d", len(scores), len(fens))
	}

	// Sequential scoring must agree with the parallel fan-out.
	for i, fen := range fens {
		want, err := eval.Score(fen, ruleval.White)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if scores[i] != want {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i], want)
		}
	}
}

func TestScoreAllBadFEN(t *testing.T) {
	preset, err := ruleval.WithPreset("shannon1950")
	if err != nil {
		t.Fatalf("WithPreset: %v", err)
	}
	eval, err := ruleval.New(preset)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eval.Close()

	if _, err := ScoreAll(context.Background(), eval, []string{"garbage"}, 2); err == nil {
		t.Error("ScoreAll with bad FEN = nil error, want error")
	}
}
