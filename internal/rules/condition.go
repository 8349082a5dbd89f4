package rules

import "github.com/discochess/ruleval/internal/board"

// Condition is a boolean gate controlling whether a rule applies.
// Evaluate must be pure and total: any legal position yields a defined
// answer, never an error.
type Condition interface {
	Evaluate(ctx Context) bool
}

// AlwaysCondition is constant true.
type AlwaysCondition struct{}

var _ Condition = AlwaysCondition{}

func (AlwaysCondition) Evaluate(Context) bool { return true }

// MaterialCondition compares the count of a piece type against a
// threshold. Piece board.Empty counts every piece type except kings.
type MaterialCondition struct {
	Piece      int
	Side       Side
	Comparison Comparison
	Count      int
}

var _ Condition = MaterialCondition{}

func (c MaterialCondition) Evaluate(ctx Context) bool {
	count := 0
	for _, color := range c.Side.Colors(ctx.Color) {
		if c.Piece == board.Empty {
			count += board.PopCount(ctx.Pos.ByColor(color) &^ ctx.Pos.Kings)
		} else {
			count += board.PopCount(ctx.Pos.Pieces(color, c.Piece))
		}
	}
	return c.Comparison.Holds(float64(count), float64(c.Count))
}

// Castled and initial king squares per color.
var (
	castledSquares = [2]uint64{
		board.SquareMask[board.SquareG1] | board.SquareMask[board.SquareC1],
		board.SquareMask[board.SquareG8] | board.SquareMask[board.SquareC8],
	}
	kingsideSquares  = [2]uint64{board.SquareMask[board.SquareG1], board.SquareMask[board.SquareG8]}
	queensideSquares = [2]uint64{board.SquareMask[board.SquareC1], board.SquareMask[board.SquareC8]}
	initialKingSq    = [2]int{board.SquareE1, board.SquareE8}
	castleRightsFor  = [2]int{board.WhiteKingSide | board.WhiteQueenSide, board.BlackKingSide | board.BlackQueenSide}
)

// CastlingCondition checks castling state for one side, derived from the
// king square and the remaining castling rights.
type CastlingCondition struct {
	Side   Side
	Status CastlingStatus
}

var _ Condition = CastlingCondition{}

func (c CastlingCondition) Evaluate(ctx Context) bool {
	for _, color := range c.Side.Colors(ctx.Color) {
		if castlingStatusHolds(ctx.Pos, color, c.Status) {
			return true
		}
	}
	return false
}

func castlingStatusHolds(pos *board.Position, color board.Color, status CastlingStatus) bool {
	kingSq := pos.KingSquare(color)
	if kingSq == board.SquareNone {
		return false
	}
	kingBit := board.SquareMask[kingSq]
	rightsLeft := pos.CastleRights&castleRightsFor[color] != 0

	switch status {
	case CastlingKingside:
		return !rightsLeft && kingBit&kingsideSquares[color] != 0
	case CastlingQueenside:
		return !rightsLeft && kingBit&queensideSquares[color] != 0
	case CastlingCanCastle:
		return rightsLeft
	case CastlingLostRights:
		// Rights gone, king still at home, and not on a castled square:
		// the side gave up castling without actually castling.
		return !rightsLeft && kingSq == initialKingSq[color] &&
			kingBit&castledSquares[color] == 0
	default: // CastlingHasCastled
		return !rightsLeft && kingBit&castledSquares[color] != 0
	}
}

// GamePhaseCondition is true when the classifier assigns the position the
// configured phase.
type GamePhaseCondition struct {
	Phase GamePhase
}

var _ Condition = GamePhaseCondition{}

func (c GamePhaseCondition) Evaluate(ctx Context) bool {
	return classifyPhase(ctx.Pos) == c.Phase
}

// Development thresholds: count of minor pieces off starting squares.
var developmentThresholds = map[DevelopmentLevel]int{
	DevelopedFully:  4,
	DevelopedMostly: 3,
	DevelopedSome:   1,
	DevelopedNone:   0,
}

// DevelopedCondition checks how many minor pieces of a side have left
// their starting squares. Restricting the scope to knights or bishops
// requires both pieces of that type to be off their squares.
type DevelopedCondition struct {
	Side  Side
	Level DevelopmentLevel
	Scope MinorScope
}

var _ Condition = DevelopedCondition{}

func (c DevelopedCondition) Evaluate(ctx Context) bool {
	for _, color := range c.Side.Colors(ctx.Color) {
		off := minorsOffStart(ctx.Pos, color, c.Scope)
		ok := false
		if c.Scope != MinorsAll {
			ok = off >= 2
		} else if c.Level == DevelopedNone {
			ok = off == 0
		} else {
			ok = off >= developmentThresholds[c.Level]
		}
		if ok {
			return true
		}
	}
	return false
}

// FileStateCondition classifies a file (or any file) by pawn contents.
type FileStateCondition struct {
	File  int // 0..7, or -1 for any file
	State FileState
}

var _ Condition = FileStateCondition{}

func (c FileStateCondition) Evaluate(ctx Context) bool {
	if c.File >= 0 && c.File <= 7 {
		return fileStateHolds(ctx, c.File, c.State)
	}
	for file := 0; file < 8; file++ {
		if fileStateHolds(ctx, file, c.State) {
			return true
		}
	}
	return false
}

func fileStateHolds(ctx Context, file int, state FileState) bool {
	mask := board.FileMask[file]
	mine := ctx.Pos.Pieces(ctx.Color, board.Pawn) & mask
	theirs := ctx.Pos.Pieces(ctx.Opponent(), board.Pawn) & mask
	switch state {
	case FileSemiOpen:
		return mine == 0 && theirs != 0
	case FileClosed:
		return mine != 0 && theirs != 0
	case FileHasMyPawn:
		return mine != 0
	case FileHasEnemyPawn:
		return theirs != 0
	default: // FileOpen
		return mine == 0 && theirs == 0
	}
}

// HasPassedCondition counts passed pawns for a side against a quantifier.
type HasPassedCondition struct {
	Side       Side
	Quantifier Quantifier
}

var _ Condition = HasPassedCondition{}

func (c HasPassedCondition) Evaluate(ctx Context) bool {
	count := 0
	for _, color := range c.Side.Colors(ctx.Color) {
		count += board.PopCount(passedPawns(ctx.Pos, color))
	}
	return c.Quantifier.Holds(count)
}

// PieceOnSquareCondition is true when any piece of the type and side
// intersects the square mask.
type PieceOnSquareCondition struct {
	Piece   int
	Side    Side
	Squares uint64
}

var _ Condition = PieceOnSquareCondition{}

func (c PieceOnSquareCondition) Evaluate(ctx Context) bool {
	for _, color := range c.Side.Colors(ctx.Color) {
		var pieces uint64
		if c.Piece == board.Empty {
			pieces = ctx.Pos.ByColor(color)
		} else {
			pieces = ctx.Pos.Pieces(color, c.Piece)
		}
		if pieces&c.Squares != 0 {
			return true
		}
	}
	return false
}

// PieceDistanceCondition compares the minimum Manhattan distance between
// any pair drawn from two piece sets against a threshold. With either set
// empty the condition is false.
type PieceDistanceCondition struct {
	PieceA     int
	SideA      Side
	PieceB     int
	SideB      Side
	Comparison Comparison
	Distance   int
}

var _ Condition = PieceDistanceCondition{}

func (c PieceDistanceCondition) Evaluate(ctx Context) bool {
	dist, ok := minPieceDistance(ctx, c.PieceA, c.SideA, c.PieceB, c.SideB)
	if !ok {
		return false
	}
	return c.Comparison.Holds(float64(dist), float64(c.Distance))
}

// minPieceDistance returns the minimum Manhattan distance between the two
// piece sets, and false when either set is empty.
func minPieceDistance(ctx Context, pieceA int, sideA Side, pieceB int, sideB Side) (int, bool) {
	setA := sideUnion(ctx, pieceA, sideA)
	setB := sideUnion(ctx, pieceB, sideB)
	if setA == 0 || setB == 0 {
		return 0, false
	}
	best := 15
	for a := setA; a != 0; a &= a - 1 {
		sqA := board.FirstOne(a)
		for b := setB; b != 0; b &= b - 1 {
			if d := board.ManhattanDistance(sqA, board.FirstOne(b)); d < best {
				best = d
			}
		}
	}
	return best, true
}

func sideUnion(ctx Context, piece int, side Side) uint64 {
	var set uint64
	for _, color := range side.Colors(ctx.Color) {
		if piece == board.Empty {
			set |= ctx.Pos.ByColor(color)
		} else {
			set |= ctx.Pos.Pieces(color, piece)
		}
	}
	return set
}

// AndCondition is true when every operand is true. An empty operand list
// is true.
type AndCondition struct {
	Operands []Condition
}

var _ Condition = AndCondition{}

func (c AndCondition) Evaluate(ctx Context) bool {
	for _, op := range c.Operands {
		if !op.Evaluate(ctx) {
			return false
		}
	}
	return true
}

// OrCondition is true when any operand is true. An empty operand list is
// false.
type OrCondition struct {
	Operands []Condition
}

var _ Condition = OrCondition{}

func (c OrCondition) Evaluate(ctx Context) bool {
	for _, op := range c.Operands {
		if op.Evaluate(ctx) {
			return true
		}
	}
	return false
}

// NotCondition negates its first operand only; with no operands it is
// true.
type NotCondition struct {
	Operands []Condition
}

var _ Condition = NotCondition{}

func (c NotCondition) Evaluate(ctx Context) bool {
	if len(c.Operands) == 0 {
		return true
	}
	return !c.Operands[0].Evaluate(ctx)
}
