// Package presets ships named historical rule sets as plain documents.
// Each preset is data only: the evaluator treats it exactly like a
// user-authored configuration.
package presets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/discochess/ruleval/internal/config"
)

// ErrUnknownPreset indicates a preset name that is not registered.
var ErrUnknownPreset = errors.New("presets: unknown preset")

var registry = map[string]func() *config.Document{
	"shannon1950":     shannon1950,
	"turochamp1948":   turochamp1948,
	"soma1960s":       soma1960s,
	"simplified1990s": simplified1990s,
	"fruit2005":       fruit2005,
}

// Names lists the registered preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns a fresh copy of the named preset document.
func Load(name string) (*config.Document, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

func enabled(id, name, category string, condition, target, value config.BlockConfig) config.RuleConfig {
	return config.RuleConfig{
		ID:        id,
		Name:      name,
		Category:  category,
		Condition: condition,
		Target:    target,
		Value:     value,
	}
}

func block(typ string, params map[string]any) config.BlockConfig {
	b := config.BlockConfig{Type: typ}
	if len(params) > 0 {
		b.Params = config.RawParams(params)
	}
	return b
}

func material(piece string, cp float64) config.RuleConfig {
	return enabled(
		"material-"+piece, piece+" material", "material",
		block("always", nil),
		block("simple_material", map[string]any{"piece": piece, "side": "my"}),
		block("fixed", map[string]any{"value": cp}),
	)
}

// shannon1950 is Claude Shannon's 1950 evaluation: material, doubled,
// backward, and isolated pawns at half a pawn, and mobility at a tenth.
func shannon1950() *config.Document {
	return &config.Document{
		Name:        "Shannon 1950",
		Description: "Claude Shannon's evaluation terms: material, pawn weaknesses, mobility.",
		Rules: []config.RuleConfig{
			material("pawn", 100),
			material("knight", 300),
			material("bishop", 300),
			material("rook", 500),
			material("queen", 900),
			enabled("doubled-penalty", "doubled pawns", "pawn_structure",
				block("always", nil),
				block("pawn_structure", map[string]any{"class": "doubled", "side": "my"}),
				block("fixed", map[string]any{"value": -50})),
			enabled("backward-penalty", "backward pawns", "pawn_structure",
				block("always", nil),
				block("pawn_structure", map[string]any{"class": "backward", "side": "my"}),
				block("fixed", map[string]any{"value": -50})),
			enabled("isolated-penalty", "isolated pawns", "pawn_structure",
				block("always", nil),
				block("pawn_structure", map[string]any{"class": "isolated", "side": "my"}),
				block("fixed", map[string]any{"value": -50})),
			enabled("mobility-bonus", "mobility", "mobility",
				block("always", nil),
				block("mobility", map[string]any{"piece": "any", "side": "my", "capture_weight": 1}),
				block("formula", map[string]any{"formula": "n*10"})),
		},
	}
}

// turochamp1948 approximates Turing and Champernowne's paper machine:
// square-root material exchange values, piece safety, king safety, and
// castling readiness.
func turochamp1948() *config.Document {
	return &config.Document{
		Name:        "Turochamp 1948",
		Description: "Turing and Champernowne's paper machine: material ratios, mobility, king safety.",
		Rules: []config.RuleConfig{
			material("pawn", 100),
			material("knight", 300),
			material("bishop", 350),
			material("rook", 500),
			material("queen", 1000),
			enabled("mobility-sqrt", "square-root mobility", "mobility",
				block("always", nil),
				block("mobility", map[string]any{"piece": "any", "side": "my", "capture_weight": 2}),
				block("formula", map[string]any{"formula": "sqrt(n)*10"})),
			enabled("defended-pieces", "defended pieces", "piece_coordination",
				block("always", nil),
				block("defense", map[string]any{"piece": "any", "side": "my", "defender": "any"}),
				block("formula", map[string]any{"formula": "min(n, 2)*5"})),
			enabled("castle-bonus", "castled king", "king_safety",
				block("castling", map[string]any{"side": "my", "status": "has_castled"}),
				block("flat_bonus", nil),
				block("fixed", map[string]any{"value": 30})),
			enabled("check-threat", "checks", "threats",
				block("always", nil),
				block("check", map[string]any{"side": "opponent"}),
				block("fixed", map[string]any{"value": 50})),
		},
	}
}

// soma1960s follows the Smith One-Move Analyzer: material plus simple
// swap-off and square-control terms.
func soma1960s() *config.Document {
	return &config.Document{
		Name:        "SOMA 1960s",
		Description: "The Smith One-Move Analyzer: swap-off material counting with a small mobility term.",
		Rules: []config.RuleConfig{
			material("pawn", 100),
			material("knight", 310),
			material("bishop", 330),
			material("rook", 500),
			material("queen", 940),
			enabled("center-control", "central space", "positional",
				block("always", nil),
				block("space", map[string]any{"side": "my"}),
				block("formula", map[string]any{"formula": "n*4"})),
			enabled("king-attack", "pressure on king", "king_safety",
				block("always", nil),
				block("king_zone_pressure", map[string]any{"side": "opponent"}),
				block("formula", map[string]any{"formula": "n*12"})),
		},
	}
}

// simplified1990s is the classic simplified evaluation: material plus
// piece-square tables.
func simplified1990s() *config.Document {
	return &config.Document{
		Name:        "Simplified 1990s",
		Description: "Classic material plus piece-square tables, in the style of early amateur engines.",
		Rules: []config.RuleConfig{
			material("pawn", 100),
			material("knight", 320),
			material("bishop", 330),
			material("rook", 500),
			material("queen", 900),
			enabled("pst", "piece-square tables", "positional",
				block("always", nil),
				block("piece_square", map[string]any{"piece": "any", "side": "my", "preset": "simplified"}),
				block("formula", map[string]any{"formula": "n*1"})),
		},
	}
}

// fruit2005 sketches a Fruit-style evaluation: tapered piece-square
// terms, passed pawns by rank, rook files, outposts, and king safety.
func fruit2005() *config.Document {
	return &config.Document{
		Name:        "Fruit-style 2005",
		Description: "A Fruit-flavored hand-tuned evaluation: tapered terms, pawn structure, king attack.",
		CategoryWeights: map[string]float64{
			"king_safety": 1.2,
			"positional":  1.0,
		},
		Rules: []config.RuleConfig{
			material("pawn", 100),
			material("knight", 325),
			material("bishop", 325),
			material("rook", 500),
			material("queen", 975),
			enabled("pst-mg", "middlegame tables", "positional",
				block("not", map[string]any{"operands": []any{
					map[string]any{"type": "game_phase", "phase": "endgame"},
				}}),
				block("piece_square", map[string]any{"piece": "any", "side": "my", "preset": "pesto_mg"}),
				block("formula", map[string]any{"formula": "n*1"})),
			enabled("pst-eg", "endgame tables", "positional",
				block("game_phase", map[string]any{"phase": "endgame"}),
				block("piece_square", map[string]any{"piece": "any", "side": "my", "preset": "pesto_eg"}),
				block("formula", map[string]any{"formula": "n*1"})),
			enabled("passers", "passed pawns by rank", "pawn_structure",
				block("always", nil),
				block("passed_pawn", map[string]any{"side": "my", "metric": "rank"}),
				block("formula", map[string]any{"formula": "n^2*2"})),
			enabled("rook-open", "rook on open file", "positional",
				block("always", nil),
				block("rook_file", map[string]any{"state": "open", "side": "my"}),
				block("fixed", map[string]any{"value": 20})),
			enabled("rook-semi", "rook on semi-open file", "positional",
				block("always", nil),
				block("rook_file", map[string]any{"state": "semi_open", "side": "my"}),
				block("fixed", map[string]any{"value": 10})),
			enabled("outposts", "minor outposts", "positional",
				block("always", nil),
				block("outpost", map[string]any{"piece": "any", "side": "my"}),
				block("fixed", map[string]any{"value": 25})),
			enabled("bishop-pair", "bishop pair", "material",
				block("always", nil),
				block("bishop_pair", map[string]any{"side": "my"}),
				block("fixed", map[string]any{"value": 50})),
			enabled("king-pressure", "king zone pressure", "king_safety",
				block("always", nil),
				block("king_zone_pressure", map[string]any{"side": "my"}),
				block("formula", map[string]any{"formula": "n*(0-8)"})),
		},
	}
}
