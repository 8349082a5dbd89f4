package rules

import "github.com/discochess/ruleval/internal/board"

// PassedPawnTarget yields one context per passed pawn. PassedEach measures
// 1; PassedRank measures the pawn's relative rank (2..7 counted from its
// own side), so value curves can reward advancement.
type PassedPawnTarget struct {
	Side   Side
	Metric PassedMetric
}

var _ Target = PassedPawnTarget{}

func (t PassedPawnTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		for x := passedPawns(ctx.Pos, color); x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			c := ctx.WithSquare(sq).WithPieceType(board.Pawn)
			if t.Metric == PassedRank {
				c = c.WithMeasurement(float64(relativeRank(sq, color) + 1))
			}
			out = append(out, c)
		}
	}
	return out
}

// PawnStructureTarget yields one context per pawn in the configured
// structural class, measurement 1.
//
// Doubled pawns are the extra pawns beyond the first on a file (the
// frontmost pawn of a doubled pair is not counted). A phalanx pawn is one
// with a same-rank neighbor one file to its right, counting each pair
// once.
type PawnStructureTarget struct {
	Class PawnClass
	Side  Side
}

var _ Target = PawnStructureTarget{}

func (t PawnStructureTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		for x := classifyPawns(ctx.Pos, color, t.Class); x != 0; x &= x - 1 {
			out = append(out, ctx.WithSquare(board.FirstOne(x)).WithPieceType(board.Pawn))
		}
	}
	return out
}

// classifyPawns returns the pawns of one color in a structural class.
func classifyPawns(pos *board.Position, c board.Color, class PawnClass) uint64 {
	pawns := pos.Pieces(c, board.Pawn)
	switch class {
	case PawnDoubled:
		// A pawn is an extra if another friendly pawn sits behind it on
		// the same file.
		var behindFill uint64
		if c == board.White {
			behindFill = board.UpFill(board.Up(pawns))
		} else {
			behindFill = board.DownFill(board.Down(pawns))
		}
		return pawns & behindFill
	case PawnIsolated:
		var isolated uint64
		for x := pawns; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			if pawns&adjacentFiles(sq) == 0 {
				isolated |= board.SquareMask[sq]
			}
		}
		return isolated
	case PawnConnected:
		return pawns & board.AllPawnAttacks(pawns, c)
	case PawnBackward:
		return backwardPawns(pos, c)
	case PawnPhalanx:
		return pawns & board.Left(pawns)
	}
	return 0
}

// backwardPawns: no friendly pawn on an adjacent file is level with or
// behind the pawn, and its push square is attacked by an enemy pawn.
func backwardPawns(pos *board.Position, c board.Color) uint64 {
	pawns := pos.Pieces(c, board.Pawn)
	enemyPawnAttacks := board.AllPawnAttacks(pos.Pieces(c.Opposite(), board.Pawn), c.Opposite())
	var backward uint64
	for x := pawns; x != 0; x &= x - 1 {
		sq := board.FirstOne(x)
		support := pawns & adjacentFiles(sq) & levelOrBehind(sq, c)
		if support != 0 {
			continue
		}
		push := board.PawnPushes(board.SquareMask[sq], c)
		if push&enemyPawnAttacks != 0 {
			backward |= board.SquareMask[sq]
		}
	}
	return backward
}

// levelOrBehind returns the ranks at or behind sq from color c's point of
// view.
func levelOrBehind(sq int, c board.Color) uint64 {
	var mask uint64
	if c == board.White {
		for r := 0; r <= board.Rank(sq); r++ {
			mask |= board.RankMask[r]
		}
	} else {
		for r := board.Rank(sq); r <= 7; r++ {
			mask |= board.RankMask[r]
		}
	}
	return mask
}
