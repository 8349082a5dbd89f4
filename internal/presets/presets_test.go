package presets

import (
	"errors"
	"testing"

	"github.com/discochess/ruleval/internal/board"
	"github.com/discochess/ruleval/internal/rules"
)

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("got %d presets, want 5", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("deepblue1997"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("got %v, want ErrUnknownPreset", err)
	}
}

// Every preset must build cleanly and survive a JSON round-trip.
func TestAllPresetsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			built, _, err := doc.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(built) == 0 {
				t.Fatal("preset has no rules")
			}
			data, err := doc.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("empty document")
			}
		})
	}
}

// A symmetric preset must score the initial position identically for
// both colors.
func TestPresetsSymmetricOnInitialPosition(t *testing.T) {
	pos := board.MustParseFEN(board.InitialPositionFEN)
	for _, name := range Names() {
		doc, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		built, _, err := doc.Build()
		if err != nil {
			t.Fatalf("Build(%s): %v", name, err)
		}
		var white, black float64
		for _, r := range built {
			white += r.Score(rules.NewContext(&pos, board.White))
			black += r.Score(rules.NewContext(&pos, board.Black))
		}
		if white != black {
			t.Errorf("%s: white %v != black %v on the initial position", name, white, black)
		}
	}
}

func TestShannonMaterialOnInitialPosition(t *testing.T) {
	doc, err := Load("shannon1950")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	built, _, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pos := board.MustParseFEN(board.InitialPositionFEN)
	ctx := rules.NewContext(&pos, board.White)
	var material float64
	for _, r := range built {
		if r.Category == rules.CategoryMaterial {
			material += r.Score(ctx)
		}
	}
	// 8x100 + 2x300 + 2x300 + 2x500 + 900.
	if material != 3900 {
		t.Errorf("material = %v, want 3900", material)
	}
}
