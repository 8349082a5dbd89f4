package ruleval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/discochess/ruleval/internal/board"
	"github.com/discochess/ruleval/internal/store/memstore"
)

const pawnCountDoc = `{
	"name": "pawn-count",
	"rules": [
		{
			"name": "pawn value",
			"category": "material",
			"condition": {"type": "always"},
			"target": {"type": "simple_material", "piece": "pawn"},
			"value": {"type": "fixed", "value": 100}
		}
	]
}`

func newPawnEvaluator(t *testing.T, opts ...Option) *Evaluator {
	t.Helper()
	docOpt, err := WithDocument([]byte(pawnCountDoc))
	if err != nil {
		t.Fatalf("WithDocument: %v", err)
	}
	e, err := New(append([]Option{docOpt}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestScoreStartingPosition(t *testing.T) {
	e := newPawnEvaluator(t)

	for _, color := range []Color{White, Black} {
		score, err := e.Score(board.InitialPositionFEN, color)
		if err != nil {
			t.Fatalf("Score(%v): %v", color, err)
		}
		if score != 800 {
			t.Errorf("Score(%v) = %v, want 800", color, score)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	e := newPawnEvaluator(t)

	const fen = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3"
	first, err := e.Score(fen, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := e.Score(fen, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if first != second {
		t.Errorf("repeated Score = %v then %v, want identical", first, second)
	}
}

func TestScoreInvalidFEN(t *testing.T) {
	e := newPawnEvaluator(t)

	if _, err := e.Score("not a position", White); err == nil {
		t.Error("Score with bad FEN = nil error, want error")
	}
}

func TestMirrorSymmetry(t *testing.T) {
	preset, err := WithPreset("shannon1950")
	if err != nil {
		t.Fatalf("WithPreset: %v", err)
	}
	e, err := New(preset)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	fens := []string{
		board.InitialPositionFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos := board.MustParseFEN(fen)
		mirror := pos.Mirrored()

		white, err := e.Score(fen, White)
		if err != nil {
			t.Fatalf("Score(%q, White): %v", fen, err)
		}
		black, err := e.Score(mirror.String(), Black)
		if err != nil {
			t.Fatalf("Score(mirror of %q, Black): %v", fen, err)
		}
		if math.Abs(white-black) > 1e-9 {
			t.Errorf("fen %q: white %v, mirrored black %v", fen, white, black)
		}
	}
}

func TestCategoryWeight(t *testing.T) {
	e := newPawnEvaluator(t, WithCategoryWeight("material", 1.5))

	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 1200 {
		t.Errorf("Score with weight 1.5 = %v, want 1200", score)
	}

	if err := e.SetCategoryWeight("material", 0); err != nil {
		t.Fatalf("SetCategoryWeight: %v", err)
	}
	score, err = e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 0 {
		t.Errorf("Score with weight 0 = %v, want 0", score)
	}
}

func TestSetCategoryWeightRejectsNonFinite(t *testing.T) {
	e := newPawnEvaluator(t)

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := e.SetCategoryWeight("material", w); !errors.Is(err, ErrInvalidWeight) {
			t.Errorf("SetCategoryWeight(%v) = %v, want ErrInvalidWeight", w, err)
		}
	}
}

func TestCacheInvalidatedOnEdit(t *testing.T) {
	e := newPawnEvaluator(t, WithCacheSize(16))

	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 800 {
		t.Fatalf("Score = %v, want 800", score)
	}

	// Warm the cache, then change the configuration. The cached total
	// must not survive the edit.
	if _, err := e.Score(board.InitialPositionFEN, White); err != nil {
		t.Fatalf("Score: %v", err)
	}
	if err := e.SetCategoryWeight("material", 2); err != nil {
		t.Fatalf("SetCategoryWeight: %v", err)
	}

	score, err = e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 1600 {
		t.Errorf("Score after reweight = %v, want 1600", score)
	}
}

func TestSetRules(t *testing.T) {
	e := newPawnEvaluator(t)

	const knightDoc = `{
		"name": "knight-count",
		"rules": [
			{
				"name": "knight value",
				"category": "material",
				"condition": {"type": "always"},
				"target": {"type": "simple_material", "piece": "knight"},
				"value": {"type": "fixed", "value": 300}
			}
		]
	}`
	if err := e.SetRules([]byte(knightDoc)); err != nil {
		t.Fatalf("SetRules: %v", err)
	}

	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 600 {
		t.Errorf("Score = %v, want 600", score)
	}
	if got := e.RulesetName(); got != "knight-count" {
		t.Errorf("RulesetName = %q, want %q", got, "knight-count")
	}
}

func TestSetRulesRejectsMalformed(t *testing.T) {
	e := newPawnEvaluator(t)

	if err := e.SetRules([]byte(`{"name": bad`)); err == nil {
		t.Error("SetRules with malformed JSON = nil error, want error")
	}

	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 800 {
		t.Errorf("Score after failed SetRules = %v, want 800 (old rules kept)", score)
	}
}

func TestExplain(t *testing.T) {
	preset, err := WithPreset("shannon1950")
	if err != nil {
		t.Fatalf("WithPreset: %v", err)
	}
	e, err := New(preset)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	const fen = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3"
	score, err := e.Score(fen, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	b, err := e.Explain(fen, White)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	if math.Abs(b.Total-score) > 1e-9 {
		t.Errorf("Explain total %v != Score %v", b.Total, score)
	}

	var ruleSum, catSum float64
	for _, rs := range b.Rules {
		ruleSum += rs.Weighted
		if !rs.Matched && rs.Weighted != 0 {
			t.Errorf("gated rule %q contributed %v", rs.Name, rs.Weighted)
		}
	}
	for _, v := range b.Categories {
		catSum += v
	}
	if math.Abs(ruleSum-b.Total) > 1e-9 {
		t.Errorf("rule contributions sum %v != total %v", ruleSum, b.Total)
	}
	if math.Abs(catSum-b.Total) > 1e-9 {
		t.Errorf("category contributions sum %v != total %v", catSum, b.Total)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	e := newPawnEvaluator(t)

	data, err := e.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if err := e.SetRules(data); err != nil {
		t.Fatalf("SetRules(Document()): %v", err)
	}

	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 800 {
		t.Errorf("Score after round-trip = %v, want 800", score)
	}
}

func TestRulesetPersistence(t *testing.T) {
	e := newPawnEvaluator(t, WithRulesetStore(memstore.New()))
	ctx := context.Background()

	if err := e.SaveRuleset(ctx, "my-rules"); err != nil {
		t.Fatalf("SaveRuleset: %v", err)
	}

	names, err := e.ListRulesets(ctx)
	if err != nil {
		t.Fatalf("ListRulesets: %v", err)
	}
	if len(names) != 1 || names[0] != "my-rules" {
		t.Errorf("ListRulesets = %v, want [my-rules]", names)
	}

	if err := e.SetCategoryWeight("material", 0.5); err != nil {
		t.Fatalf("SetCategoryWeight: %v", err)
	}
	if err := e.LoadRuleset(ctx, "my-rules"); err != nil {
		t.Fatalf("LoadRuleset: %v", err)
	}
	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 800 {
		t.Errorf("Score after reload = %v, want 800", score)
	}

	if err := e.LoadRuleset(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRuleset missing = %v, want ErrNotFound", err)
	}
}

func TestPersistenceWithoutStore(t *testing.T) {
	e := newPawnEvaluator(t)
	ctx := context.Background()

	if err := e.SaveRuleset(ctx, "x"); !errors.Is(err, ErrNoStore) {
		t.Errorf("SaveRuleset = %v, want ErrNoStore", err)
	}
	if err := e.LoadRuleset(ctx, "x"); !errors.Is(err, ErrNoStore) {
		t.Errorf("LoadRuleset = %v, want ErrNoStore", err)
	}
}

func TestNewWithoutRules(t *testing.T) {
	if _, err := New(); !errors.Is(err, ErrNoRules) {
		t.Errorf("New() = %v, want ErrNoRules", err)
	}
}

func TestWithDocumentRejectsUnknownBlock(t *testing.T) {
	const doc = `{
		"name": "bad",
		"rules": [
			{
				"name": "mystery",
				"category": "material",
				"condition": {"type": "always"},
				"target": {"type": "quantum_entanglement"},
				"value": {"type": "fixed", "value": 1}
			}
		]
	}`
	if _, err := WithDocument([]byte(doc)); err == nil {
		t.Error("WithDocument with unknown target = nil error, want error")
	}
}

func TestClose(t *testing.T) {
	docOpt, err := WithDocument([]byte(pawnCountDoc))
	if err != nil {
		t.Fatalf("WithDocument: %v", err)
	}
	e, err := New(docOpt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := e.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close = %v, want ErrClosed", err)
	}
	if _, err := e.Score(board.InitialPositionFEN, White); !errors.Is(err, ErrClosed) {
		t.Errorf("Score after Close = %v, want ErrClosed", err)
	}
	if err := e.SetRules([]byte(pawnCountDoc)); !errors.Is(err, ErrClosed) {
		t.Errorf("SetRules after Close = %v, want ErrClosed", err)
	}
}

func TestActiveRules(t *testing.T) {
	const doc = `{
		"name": "mixed",
		"rules": [
			{
				"name": "on",
				"category": "material",
				"condition": {"type": "always"},
				"target": {"type": "simple_material", "piece": "pawn"},
				"value": {"type": "fixed", "value": 100}
			},
			{
				"name": "off",
				"enabled": false,
				"category": "material",
				"condition": {"type": "always"},
				"target": {"type": "simple_material", "piece": "rook"},
				"value": {"type": "fixed", "value": 500}
			}
		]
	}`
	docOpt, err := WithDocument([]byte(doc))
	if err != nil {
		t.Fatalf("WithDocument: %v", err)
	}
	e, err := New(docOpt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if got := e.ActiveRules(); got != 1 {
		t.Errorf("ActiveRules = %d, want 1", got)
	}
	score, err := e.Score(board.InitialPositionFEN, White)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 800 {
		t.Errorf("Score = %v, want 800 (disabled rule must not fire)", score)
	}
}

func TestConcurrentScoring(t *testing.T) {
	e := newPawnEvaluator(t, WithCacheSize(64))

	done := make(chan float64, 8)
	for i := 0; i < 8; i++ {
		go func() {
			score, err := e.Score(board.InitialPositionFEN, White)
			if err != nil {
				t.Error(err)
			}
			done <- score
		}()
	}
	for i := 0; i < 8; i++ {
		if score := <-done; score != 800 {
			t.Errorf("concurrent Score = %v, want 800", score)
		}
	}
}
