package rules

import (
	"strings"

	"github.com/discochess/ruleval/internal/board"
)

// Every string-valued parameter in a rule document goes through exactly
// one of the parse functions below. Parsing is case-insensitive and
// tolerant of underscores, hyphens, and spaces; unrecognized input falls
// back to the documented default so a stale document degrades instead of
// failing mid-load.

// normalizeAlias lowercases and strips separator characters.
func normalizeAlias(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, s)
}

// Side selects whose pieces a block examines, relative to the evaluating
// color.
type Side int

const (
	SideMine Side = iota
	SideOpponent
	SideBoth
)

// ParseSide maps a side alias. Default: SideMine.
func ParseSide(s string) Side {
	switch normalizeAlias(s) {
	case "opponent", "opp", "enemy", "their", "theirs":
		return SideOpponent
	case "both", "all", "either", "any":
		return SideBoth
	default:
		return SideMine
	}
}

// Colors expands a side selector into concrete colors, in a stable order.
func (s Side) Colors(mine board.Color) []board.Color {
	switch s {
	case SideOpponent:
		return []board.Color{mine.Opposite()}
	case SideBoth:
		return []board.Color{mine, mine.Opposite()}
	default:
		return []board.Color{mine}
	}
}

// Comparison is a threshold operator shared by material counts and piece
// distances.
type Comparison int

const (
	CmpAtLeast Comparison = iota
	CmpAtMost
	CmpExactly
	CmpMoreThan
	CmpLessThan
)

// ParseComparison maps a comparison alias. Default: CmpAtLeast.
func ParseComparison(s string) Comparison {
	switch normalizeAlias(s) {
	case "atmost", "max", "maximum", "<=", "lte", "lessthanorequal":
		return CmpAtMost
	case "exactly", "equal", "equals", "==", "=", "eq":
		return CmpExactly
	case "morethan", "greaterthan", ">", "gt", "above":
		return CmpMoreThan
	case "lessthan", "<", "lt", "below", "fewerthan":
		return CmpLessThan
	default:
		return CmpAtLeast
	}
}

// Holds reports whether "lhs cmp rhs" is satisfied.
func (c Comparison) Holds(lhs, rhs float64) bool {
	switch c {
	case CmpAtMost:
		return lhs <= rhs
	case CmpExactly:
		return lhs == rhs
	case CmpMoreThan:
		return lhs > rhs
	case CmpLessThan:
		return lhs < rhs
	default:
		return lhs >= rhs
	}
}

// GamePhase classifies how far a game has progressed.
type GamePhase int

const (
	PhaseOpening GamePhase = iota
	PhaseEarlyMiddle
	PhaseMiddlegame
	PhaseEndgame
	PhaseLateEndgame
)

// ParsePhase maps a phase alias. Default: PhaseMiddlegame.
func ParsePhase(s string) GamePhase {
	switch normalizeAlias(s) {
	case "opening", "open":
		return PhaseOpening
	case "early", "earlymiddle", "earlymiddlegame":
		return PhaseEarlyMiddle
	case "endgame", "end", "ending":
		return PhaseEndgame
	case "lateendgame", "late":
		return PhaseLateEndgame
	default:
		return PhaseMiddlegame
	}
}

// DevelopmentLevel is the threshold a Developed condition requires.
type DevelopmentLevel int

const (
	DevelopedFully DevelopmentLevel = iota
	DevelopedMostly
	DevelopedSome
	DevelopedNone
)

// ParseDevelopmentLevel maps a development-level alias.
// Default: DevelopedSome.
func ParseDevelopmentLevel(s string) DevelopmentLevel {
	switch normalizeAlias(s) {
	case "fully", "full", "complete":
		return DevelopedFully
	case "mostly", "most":
		return DevelopedMostly
	case "none", "undeveloped", "not":
		return DevelopedNone
	default:
		return DevelopedSome
	}
}

// MinorScope restricts development checks to a minor-piece subset.
type MinorScope int

const (
	MinorsAll MinorScope = iota
	MinorsKnights
	MinorsBishops
)

// ParseMinorScope maps a minor-scope alias. Default: MinorsAll.
func ParseMinorScope(s string) MinorScope {
	switch normalizeAlias(s) {
	case "knights", "knight":
		return MinorsKnights
	case "bishops", "bishop":
		return MinorsBishops
	default:
		return MinorsAll
	}
}

// FileState classifies a file by its pawn contents.
type FileState int

const (
	FileOpen FileState = iota
	FileSemiOpen
	FileClosed
	FileHasMyPawn
	FileHasEnemyPawn
)

// ParseFileState maps a file-state alias. Default: FileOpen.
func ParseFileState(s string) FileState {
	switch normalizeAlias(s) {
	case "semiopen", "halfopen", "semi":
		return FileSemiOpen
	case "closed", "blocked":
		return FileClosed
	case "hasmypawn", "mypawn", "ownpawn":
		return FileHasMyPawn
	case "hasenemypawn", "enemypawn", "opponentpawn":
		return FileHasEnemyPawn
	default:
		return FileOpen
	}
}

// ParseFile maps a file alias ("a".."h", "any"). Returns -1 for "any" and
// anything unrecognized.
func ParseFile(s string) int {
	n := normalizeAlias(s)
	if len(n) == 1 && n[0] >= 'a' && n[0] <= 'h' {
		return int(n[0] - 'a')
	}
	return -1
}

// Quantifier counts qualifying features.
type Quantifier int

const (
	QuantifierAny Quantifier = iota
	QuantifierNone
	QuantifierMultiple
)

// ParseQuantifier maps a quantifier alias. Default: QuantifierAny.
func ParseQuantifier(s string) Quantifier {
	switch normalizeAlias(s) {
	case "none", "no", "zero":
		return QuantifierNone
	case "multiple", "many", "several", "two":
		return QuantifierMultiple
	default:
		return QuantifierAny
	}
}

// Holds reports whether a count satisfies the quantifier.
func (q Quantifier) Holds(count int) bool {
	switch q {
	case QuantifierNone:
		return count == 0
	case QuantifierMultiple:
		return count >= 2
	default:
		return count >= 1
	}
}

// CastlingStatus is the condition a Castling block checks.
type CastlingStatus int

const (
	CastlingHasCastled CastlingStatus = iota
	CastlingKingside
	CastlingQueenside
	CastlingCanCastle
	CastlingLostRights
)

// ParseCastlingStatus maps a castling-status alias.
// Default: CastlingHasCastled.
func ParseCastlingStatus(s string) CastlingStatus {
	switch normalizeAlias(s) {
	case "kingside", "short", "castledkingside", "oo":
		return CastlingKingside
	case "queenside", "long", "castledqueenside", "ooo":
		return CastlingQueenside
	case "cancastle", "rightsavailable", "available":
		return CastlingCanCastle
	case "lostrights", "lostcastlingrights", "forfeited":
		return CastlingLostRights
	default:
		return CastlingHasCastled
	}
}

// ParsePiece maps a piece-type alias to a board piece constant.
// "all"/"any" map to board.Empty, which blocks treat as "every type".
// Default: board.Pawn.
func ParsePiece(s string) int {
	switch normalizeAlias(s) {
	case "knight", "n":
		return board.Knight
	case "bishop", "b":
		return board.Bishop
	case "rook", "r":
		return board.Rook
	case "queen", "q":
		return board.Queen
	case "king", "k":
		return board.King
	case "all", "any", "":
		return board.Empty
	default:
		return board.Pawn
	}
}

// PieceName returns the canonical alias for a piece constant.
func PieceName(pt int) string {
	switch pt {
	case board.Pawn:
		return "pawn"
	case board.Knight:
		return "knight"
	case board.Bishop:
		return "bishop"
	case board.Rook:
		return "rook"
	case board.Queen:
		return "queen"
	case board.King:
		return "king"
	}
	return "all"
}

// PawnClass is a pawn-structure classification.
type PawnClass int

const (
	PawnDoubled PawnClass = iota
	PawnIsolated
	PawnConnected
	PawnBackward
	PawnPhalanx
)

// ParsePawnClass maps a pawn-class alias. Default: PawnDoubled.
func ParsePawnClass(s string) PawnClass {
	switch normalizeAlias(s) {
	case "isolated", "isolani":
		return PawnIsolated
	case "connected", "defended", "chain":
		return PawnConnected
	case "backward", "backwards":
		return PawnBackward
	case "phalanx", "duo":
		return PawnPhalanx
	default:
		return PawnDoubled
	}
}

// BatteryAxis selects which slider alignments a battery scan considers.
type BatteryAxis int

const (
	AxisAll BatteryAxis = iota
	AxisRook
	AxisBishop
)

// ParseBatteryAxis maps a battery-axis alias. Default: AxisAll.
func ParseBatteryAxis(s string) BatteryAxis {
	switch normalizeAlias(s) {
	case "rook", "file", "rank", "orthogonal", "lines":
		return AxisRook
	case "bishop", "diagonal", "diagonals":
		return AxisBishop
	default:
		return AxisAll
	}
}

// WeakRegion is the board region a weak-square scan covers.
type WeakRegion int

const (
	RegionKingZone WeakRegion = iota
	RegionCenter
	RegionOpponentCamp
)

// ParseWeakRegion maps a weak-region alias. Default: RegionKingZone.
func ParseWeakRegion(s string) WeakRegion {
	switch normalizeAlias(s) {
	case "center", "centre", "middle":
		return RegionCenter
	case "opponentcamp", "enemycamp", "camp", "opponenthalf":
		return RegionOpponentCamp
	default:
		return RegionKingZone
	}
}

// PassedMetric selects what a passed-pawn target measures.
type PassedMetric int

const (
	PassedEach PassedMetric = iota
	PassedRank
)

// ParsePassedMetric maps a passed-pawn metric alias. Default: PassedEach.
func ParsePassedMetric(s string) PassedMetric {
	switch normalizeAlias(s) {
	case "rank", "advance", "advancement":
		return PassedRank
	default:
		return PassedEach
	}
}
