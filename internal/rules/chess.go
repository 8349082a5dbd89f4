package rules

import "github.com/discochess/ruleval/internal/board"

// Shared chess-domain computations used by both conditions and targets.

// Piece values used by the phase classifier and material summaries.
var phaseValues = [board.King + 1]int{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
}

// Phase classifier thresholds.
const (
	endgameMaterial     = 3900
	lateEndgameMaterial = 1500
	openingMinorsOff    = 2
	middlegameMinorsOff = 6
)

// Minor-piece starting squares, used as the development proxy.
var (
	whiteMinorStart = board.SquareMask[board.SquareB1] | board.SquareMask[board.SquareG1] |
		board.SquareMask[board.SquareC1] | board.SquareMask[board.SquareF1]
	blackMinorStart = board.SquareMask[board.SquareB8] | board.SquareMask[board.SquareG8] |
		board.SquareMask[board.SquareC8] | board.SquareMask[board.SquareF8]

	whiteKnightStart = board.SquareMask[board.SquareB1] | board.SquareMask[board.SquareG1]
	whiteBishopStart = board.SquareMask[board.SquareC1] | board.SquareMask[board.SquareF1]
	blackKnightStart = board.SquareMask[board.SquareB8] | board.SquareMask[board.SquareG8]
	blackBishopStart = board.SquareMask[board.SquareC8] | board.SquareMask[board.SquareF8]
)

// totalMaterial sums non-king material over both sides in centipawns.
func totalMaterial(pos *board.Position) int {
	total := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		total += board.PopCount(pos.PiecesByType(pt)) * phaseValues[pt]
	}
	return total
}

// minorsOffStart counts minor pieces of one color that have left their
// starting squares, restricted by scope.
func minorsOffStart(pos *board.Position, c board.Color, scope MinorScope) int {
	var pieces, start uint64
	switch scope {
	case MinorsKnights:
		pieces = pos.Pieces(c, board.Knight)
		if c == board.White {
			start = whiteKnightStart
		} else {
			start = blackKnightStart
		}
	case MinorsBishops:
		pieces = pos.Pieces(c, board.Bishop)
		if c == board.White {
			start = whiteBishopStart
		} else {
			start = blackBishopStart
		}
	default:
		pieces = pos.Pieces(c, board.Knight) | pos.Pieces(c, board.Bishop)
		if c == board.White {
			start = whiteMinorStart
		} else {
			start = blackMinorStart
		}
	}
	return board.PopCount(pieces &^ start)
}

// classifyPhase implements the development-based game-phase heuristic:
// queens off or low total material means endgame (very low means late
// endgame); otherwise the count of minor pieces off their starting
// squares drives opening / early-middlegame / middlegame.
func classifyPhase(pos *board.Position) GamePhase {
	material := totalMaterial(pos)
	if pos.Queens == 0 || material < endgameMaterial {
		if material < lateEndgameMaterial {
			return PhaseLateEndgame
		}
		return PhaseEndgame
	}

	developed := minorsOffStart(pos, board.White, MinorsAll) +
		minorsOffStart(pos, board.Black, MinorsAll)
	switch {
	case developed < openingMinorsOff:
		return PhaseOpening
	case developed < middlegameMinorsOff:
		return PhaseEarlyMiddle
	default:
		return PhaseMiddlegame
	}
}

// passedPawns returns the pawns of color c with no enemy pawn on their
// file or an adjacent file strictly ahead of them.
func passedPawns(pos *board.Position, c board.Color) uint64 {
	enemyPawns := pos.Pieces(c.Opposite(), board.Pawn)
	var passed uint64
	for x := pos.Pieces(c, board.Pawn); x != 0; x &= x - 1 {
		sq := board.FirstOne(x)
		if enemyPawns&passedPawnBlockers(sq, c) == 0 {
			passed |= board.SquareMask[sq]
		}
	}
	return passed
}

// passedPawnBlockers returns the squares strictly ahead of sq (for color
// c) on its file and both adjacent files.
func passedPawnBlockers(sq int, c board.Color) uint64 {
	b := board.SquareMask[sq]
	span := b | board.Left(b) | board.Right(b)
	return board.FrontFill(span, c)
}

// kingZone is the king square and its neighbors, or 0 with no king.
func kingZone(pos *board.Position, c board.Color) uint64 {
	kingSq := pos.KingSquare(c)
	if kingSq == board.SquareNone {
		return 0
	}
	return board.SquareMask[kingSq] | board.KingAttacks[kingSq]
}

// attackedBy unions the attack sets of every piece of one color.
func attackedBy(pos *board.Position, c board.Color) uint64 {
	occ := pos.All()
	attacks := board.AllPawnAttacks(pos.Pieces(c, board.Pawn), c)
	for pt := board.Knight; pt <= board.King; pt++ {
		for x := pos.Pieces(c, pt); x != 0; x &= x - 1 {
			attacks |= board.PieceAttacks(pt, board.FirstOne(x), c, occ)
		}
	}
	return attacks
}

// relativeRank returns the rank of sq as seen from c's side of the board
// (0 for the back rank, 7 for the promotion rank).
func relativeRank(sq int, c board.Color) int {
	if c == board.White {
		return board.Rank(sq)
	}
	return 7 - board.Rank(sq)
}

// adjacentFiles returns the file masks either side of a square's file.
func adjacentFiles(sq int) uint64 {
	f := board.File(sq)
	var mask uint64
	if f > 0 {
		mask |= board.FileMask[f-1]
	}
	if f < 7 {
		mask |= board.FileMask[f+1]
	}
	return mask
}

// pawnGuardable reports whether a pawn of color c could now or after
// advancing defend square sq: some pawn of c sits on an adjacent file at
// or behind the rank that attacks sq.
func pawnGuardable(pos *board.Position, c board.Color, sq int) bool {
	pawns := pos.Pieces(c, board.Pawn) & adjacentFiles(sq)
	if pawns == 0 {
		return false
	}
	guardRank := board.Rank(sq) - 1
	if c == board.Black {
		guardRank = board.Rank(sq) + 1
	}
	if guardRank < 0 || guardRank > 7 {
		return false
	}
	var reachable uint64
	if c == board.White {
		for r := 0; r <= guardRank; r++ {
			reachable |= board.RankMask[r]
		}
	} else {
		for r := guardRank; r <= 7; r++ {
			reachable |= board.RankMask[r]
		}
	}
	return pawns&reachable != 0
}
