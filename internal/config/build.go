package config

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/discochess/ruleval/internal/board"
	"github.com/discochess/ruleval/internal/rules"
)

// Sentinel errors for semantic build failures. Unknown block types and
// invalid formulas are load-time errors; unknown parameter aliases fall
// back to their documented defaults instead.
var (
	ErrUnknownCondition = errors.New("config: unknown condition type")
	ErrUnknownTarget    = errors.New("config: unknown target type")
	ErrUnknownValue     = errors.New("config: unknown value type")
)

// Build compiles the document into evaluator rules and category weights.
// Rules missing an id are assigned a fresh uuid so an exported document
// can always be addressed rule-by-rule.
func (d *Document) Build() ([]*rules.Rule, map[rules.Category]float64, error) {
	built := make([]*rules.Rule, 0, len(d.Rules))
	for i := range d.Rules {
		rc := &d.Rules[i]

		cond, err := BuildCondition(rc.Condition)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %d (%s): %w", i, rc.Name, err)
		}
		target, err := BuildTarget(rc.Target)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %d (%s): %w", i, rc.Name, err)
		}
		value, err := BuildValue(rc.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %d (%s): %w", i, rc.Name, err)
		}

		if rc.ID == "" {
			rc.ID = uuid.NewString()
		}
		built = append(built, &rules.Rule{
			ID:        rc.ID,
			Name:      rc.Name,
			Category:  rules.ParseCategory(rc.Category),
			Condition: cond,
			Target:    target,
			Value:     value,
			Enabled:   rc.IsEnabled(),
		})
	}

	weights := make(map[rules.Category]float64, len(d.CategoryWeights))
	for name, w := range d.CategoryWeights {
		weights[rules.ParseCategory(name)] = w
	}
	return built, weights, nil
}

// BuildCondition compiles one condition block, recursing into logical
// operands.
func BuildCondition(b BlockConfig) (rules.Condition, error) {
	switch b.Type {
	case "", "always":
		return rules.AlwaysCondition{}, nil
	case "material":
		return rules.MaterialCondition{
			Piece:      rules.ParsePiece(b.stringParam("piece")),
			Side:       rules.ParseSide(b.stringParam("side")),
			Comparison: rules.ParseComparison(b.stringParam("comparison")),
			Count:      b.intParam("count", 1),
		}, nil
	case "castling":
		return rules.CastlingCondition{
			Side:   rules.ParseSide(b.stringParam("side")),
			Status: rules.ParseCastlingStatus(b.stringParam("status")),
		}, nil
	case "game_phase":
		return rules.GamePhaseCondition{
			Phase: rules.ParsePhase(b.stringParam("phase")),
		}, nil
	case "developed":
		return rules.DevelopedCondition{
			Side:  rules.ParseSide(b.stringParam("side")),
			Level: rules.ParseDevelopmentLevel(b.stringParam("level")),
			Scope: rules.ParseMinorScope(b.stringParam("scope")),
		}, nil
	case "file_state":
		return rules.FileStateCondition{
			File:  rules.ParseFile(b.stringParam("file")),
			State: rules.ParseFileState(b.stringParam("state")),
		}, nil
	case "has_passed":
		return rules.HasPassedCondition{
			Side:       rules.ParseSide(b.stringParam("side")),
			Quantifier: rules.ParseQuantifier(b.stringParam("quantifier")),
		}, nil
	case "piece_on_square":
		return rules.PieceOnSquareCondition{
			Piece:   rules.ParsePiece(b.stringParam("piece")),
			Side:    rules.ParseSide(b.stringParam("side")),
			Squares: board.ParseSquareList(b.stringParam("squares")),
		}, nil
	case "piece_distance":
		return rules.PieceDistanceCondition{
			PieceA:     rules.ParsePiece(b.stringParam("piece_a")),
			SideA:      rules.ParseSide(b.stringParam("side_a")),
			PieceB:     rules.ParsePiece(b.stringParam("piece_b")),
			SideB:      rules.ParseSide(b.stringParam("side_b")),
			Comparison: rules.ParseComparison(b.stringParam("comparison")),
			Distance:   b.intParam("distance", 0),
		}, nil
	case "and":
		ops, err := buildOperands(b)
		if err != nil {
			return nil, err
		}
		return rules.AndCondition{Operands: ops}, nil
	case "or":
		ops, err := buildOperands(b)
		if err != nil {
			return nil, err
		}
		return rules.OrCondition{Operands: ops}, nil
	case "not":
		ops, err := buildOperands(b)
		if err != nil {
			return nil, err
		}
		return rules.NotCondition{Operands: ops}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, b.Type)
	}
}

func buildOperands(b BlockConfig) ([]rules.Condition, error) {
	blocks, err := b.blockList("operands")
	if err != nil {
		return nil, err
	}
	ops := make([]rules.Condition, 0, len(blocks))
	for _, block := range blocks {
		op, err := BuildCondition(block)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// BuildTarget compiles one target block.
func BuildTarget(b BlockConfig) (rules.Target, error) {
	side := rules.ParseSide(b.stringParam("side"))
	switch b.Type {
	case "simple_material":
		return rules.MaterialTarget{
			Piece: rules.ParsePiece(b.stringParam("piece")),
			Side:  side,
		}, nil
	case "development":
		return rules.DevelopmentTarget{
			Side:  side,
			Scope: rules.ParseMinorScope(b.stringParam("scope")),
		}, nil
	case "bishop_pair":
		return rules.BishopPairTarget{Side: side}, nil
	case "check":
		return rules.CheckTarget{Side: side}, nil
	case "flat_bonus":
		return rules.FlatBonusTarget{}, nil
	case "mobility":
		return rules.MobilityTarget{
			Piece:         rules.ParsePiece(b.stringParam("piece")),
			Side:          side,
			CaptureWeight: b.floatParam("capture_weight", 1),
		}, nil
	case "defense":
		return rules.DefenseTarget{
			Piece:    rules.ParsePiece(b.stringParam("piece")),
			Side:     side,
			Defender: rules.ParsePiece(b.stringParam("defender")),
		}, nil
	case "outpost":
		return rules.OutpostTarget{
			Piece: rules.ParsePiece(b.stringParam("piece")),
			Side:  side,
		}, nil
	case "battery":
		return rules.BatteryTarget{
			Axis: rules.ParseBatteryAxis(b.stringParam("axis")),
			Side: side,
		}, nil
	case "rook_file":
		return rules.RookFileTarget{
			State: rules.ParseFileState(b.stringParam("state")),
			Side:  side,
		}, nil
	case "passed_pawn":
		return rules.PassedPawnTarget{
			Side:   side,
			Metric: rules.ParsePassedMetric(b.stringParam("metric")),
		}, nil
	case "pawn_structure":
		return rules.PawnStructureTarget{
			Class: rules.ParsePawnClass(b.stringParam("class")),
			Side:  side,
		}, nil
	case "king_zone_pressure":
		return rules.KingZonePressureTarget{Side: side}, nil
	case "weak_squares":
		return rules.WeakSquaresTarget{
			Region: rules.ParseWeakRegion(b.stringParam("region")),
			Side:   side,
		}, nil
	case "king_tropism":
		return rules.KingTropismTarget{
			Piece: rules.ParsePiece(b.stringParam("piece")),
			Side:  side,
		}, nil
	case "target_piece_distance":
		return rules.PieceDistanceTarget{
			PieceA: rules.ParsePiece(b.stringParam("piece_a")),
			SideA:  rules.ParseSide(b.stringParam("side_a")),
			PieceB: rules.ParsePiece(b.stringParam("piece_b")),
			SideB:  rules.ParseSide(b.stringParam("side_b")),
		}, nil
	case "space":
		return rules.SpaceTarget{Side: side}, nil
	case "piece_square":
		return rules.PieceSquareTarget{
			Piece:  rules.ParsePiece(b.stringParam("piece")),
			Side:   side,
			Preset: rules.ParsePSTPreset(b.stringParam("preset")),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, b.Type)
	}
}

// BuildValue compiles one value block. Fixed reads "value" (or "amount");
// formula reads "formula" (or "expression") and validates it here so a
// bad curve can never reach the scoring path.
func BuildValue(b BlockConfig) (rules.Value, error) {
	switch b.Type {
	case "", "fixed":
		amount := b.floatParam("value", b.floatParam("amount", 0))
		return rules.FixedValue{Centipawns: amount}, nil
	case "formula":
		expr := b.stringParam("formula")
		if expr == "" {
			expr = b.stringParam("expression")
		}
		v, err := rules.NewFormula(expr)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValue, b.Type)
	}
}
