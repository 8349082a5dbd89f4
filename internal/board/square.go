package board

import "strings"

// Color identifies a side.
type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece identifies a piece type. Empty is the zero value so that a
// Piece-indexed array can reserve slot 0.
const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Castling rights flags.
const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// Squares are 0..63, a1=0, h1=7, a8=56, h8=63.
const SquareNone = -1

const (
	SquareA1 = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
)

const (
	SquareA8 = 56 + iota
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// File returns the file (0..7) of a square.
func File(sq int) int {
	return sq & 7
}

// Rank returns the rank (0..7) of a square.
func Rank(sq int) int {
	return sq >> 3
}

// MakeSquare builds a square index from file and rank.
func MakeSquare(file, rank int) int {
	return rank<<3 | file
}

// FlipSquare mirrors a square vertically (a1 <-> a8).
func FlipSquare(sq int) int {
	return sq ^ 56
}

func absDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

// FileDistance returns the file distance between two squares.
func FileDistance(sq1, sq2 int) int {
	return absDelta(File(sq1), File(sq2))
}

// RankDistance returns the rank distance between two squares.
func RankDistance(sq1, sq2 int) int {
	return absDelta(Rank(sq1), Rank(sq2))
}

// ManhattanDistance returns the taxicab distance between two squares.
func ManhattanDistance(sq1, sq2 int) int {
	return FileDistance(sq1, sq2) + RankDistance(sq1, sq2)
}

// ChebyshevDistance returns the king-move distance between two squares.
func ChebyshevDistance(sq1, sq2 int) int {
	fd := FileDistance(sq1, sq2)
	rd := RankDistance(sq1, sq2)
	if fd > rd {
		return fd
	}
	return rd
}

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

// SquareName returns the algebraic name of a square, e.g. "e4".
func SquareName(sq int) string {
	if sq == SquareNone {
		return "-"
	}
	return string(fileNames[File(sq)]) + string(rankNames[Rank(sq)])
}

// ParseSquare parses an algebraic square name.
// Returns SquareNone for anything it does not recognize.
func ParseSquare(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 2 {
		return SquareNone
	}
	file := strings.IndexByte(fileNames, s[0])
	rank := strings.IndexByte(rankNames, s[1])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}

// ParseSquareList parses a comma-separated list of algebraic squares into
// a bitboard. Unrecognized entries are skipped.
func ParseSquareList(s string) uint64 {
	var mask uint64
	for _, part := range strings.Split(s, ",") {
		if sq := ParseSquare(part); sq != SquareNone {
			mask |= SquareMask[sq]
		}
	}
	return mask
}
