package board

import "math/bits"

// File and rank masks.
const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

// FileMask indexes file masks by file number.
var FileMask = [8]uint64{
	FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask,
}

// RankMask indexes rank masks by rank number.
var RankMask = [8]uint64{
	Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask,
}

var (
	// SquareMask holds the single-bit mask for each square.
	SquareMask [64]uint64

	// KnightAttacks and KingAttacks are precomputed leaper attack sets.
	KnightAttacks [64]uint64
	KingAttacks   [64]uint64

	whitePawnAttacks [64]uint64
	blackPawnAttacks [64]uint64

	rookAttackTable   [64][1 << 12]uint64
	bishopAttackTable [64][1 << 9]uint64

	betweenMask [64][64]uint64
)

// PopCount returns the number of set bits.
func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

// FirstOne returns the index of the lowest set bit.
// b must be non-zero.
func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

// MoreThanOne reports whether b has at least two bits set.
func MoreThanOne(b uint64) bool {
	return b != 0 && b&(b-1) != 0
}

// Directional shifts. Horizontal shifts mask off the wrapping file.
func Up(b uint64) uint64    { return b << 8 }
func Down(b uint64) uint64  { return b >> 8 }
func Right(b uint64) uint64 { return (b &^ FileHMask) << 1 }
func Left(b uint64) uint64  { return (b &^ FileAMask) >> 1 }

func UpRight(b uint64) uint64   { return Up(Right(b)) }
func UpLeft(b uint64) uint64    { return Up(Left(b)) }
func DownRight(b uint64) uint64 { return Down(Right(b)) }
func DownLeft(b uint64) uint64  { return Down(Left(b)) }

// UpFill smears every bit upward through rank 8.
func UpFill(b uint64) uint64 {
	b |= b << 8
	b |= b << 16
	b |= b << 32
	return b
}

// DownFill smears every bit downward through rank 1.
func DownFill(b uint64) uint64 {
	b |= b >> 8
	b |= b >> 16
	b |= b >> 32
	return b
}

// FileFill smears every bit across its whole file.
func FileFill(b uint64) uint64 {
	return UpFill(b) | DownFill(b)
}

// FrontFill smears bits toward the promotion rank of the given color,
// excluding the starting squares themselves.
func FrontFill(b uint64, c Color) uint64 {
	if c == White {
		return UpFill(Up(b))
	}
	return DownFill(Down(b))
}

// AllPawnAttacks returns the union of attack squares of all pawns in b.
func AllPawnAttacks(b uint64, c Color) uint64 {
	if c == White {
		return UpLeft(b) | UpRight(b)
	}
	return DownLeft(b) | DownRight(b)
}

// PawnAttacks returns the attack set of a single pawn.
func PawnAttacks(from int, c Color) uint64 {
	if c == White {
		return whitePawnAttacks[from]
	}
	return blackPawnAttacks[from]
}

// PawnPushes returns the single-step advance of all pawns in b.
func PawnPushes(b uint64, c Color) uint64 {
	if c == White {
		return Up(b)
	}
	return Down(b)
}

// BishopAttacks returns the diagonal attack set from a square given board
// occupancy, using magic bitboard lookup.
// https://www.chessprogramming.org/Magic_Bitboards
func BishopAttacks(from int, occ uint64) uint64 {
	return bishopAttackTable[from][((bishopMask[from]&occ)*bishopMagic[from])>>bishopShift]
}

// RookAttacks returns the orthogonal attack set from a square given board
// occupancy.
func RookAttacks(from int, occ uint64) uint64 {
	return rookAttackTable[from][((rookMask[from]&occ)*rookMagic[from])>>rookShift]
}

// QueenAttacks returns the combined rook and bishop attack set.
func QueenAttacks(from int, occ uint64) uint64 {
	return BishopAttacks(from, occ) | RookAttacks(from, occ)
}

// Between returns the squares strictly between two aligned squares, or 0
// if the squares do not share a rank, file, or diagonal.
func Between(sq1, sq2 int) uint64 {
	return betweenMask[sq1][sq2]
}

// BitboardString formats a bitboard as a square list, for debugging.
func BitboardString(b uint64) string {
	s := ""
	for x := b; x != 0; x &= x - 1 {
		if s != "" {
			s += ","
		}
		s += SquareName(FirstOne(x))
	}
	return "(" + s + ")"
}

// occupancySubset expands the index'th subset of the set bits of mask.
func occupancySubset(mask uint64, index int) uint64 {
	var subset uint64
	count := PopCount(mask)
	for i, rest := 0, mask; i < count; i++ {
		bit := rest & -rest
		rest &= rest - 1
		if index&(1<<uint(i)) != 0 {
			subset |= bit
		}
	}
	return subset
}

func slideAttacks(from int, occ uint64, shifts []func(uint64) uint64) uint64 {
	var result uint64
	for _, shift := range shifts {
		for x := shift(SquareMask[from]); x != 0; x = shift(x) {
			result |= x
			if x&occ != 0 {
				break
			}
		}
	}
	return result
}

func init() {
	rookShifts := []func(uint64) uint64{Up, Right, Down, Left}
	bishopShifts := []func(uint64) uint64{UpRight, UpLeft, DownRight, DownLeft}

	for sq := 0; sq < 64; sq++ {
		b := uint64(1) << uint(sq)
		SquareMask[sq] = b

		whitePawnAttacks[sq] = UpLeft(b) | UpRight(b)
		blackPawnAttacks[sq] = DownLeft(b) | DownRight(b)

		KnightAttacks[sq] = Right(UpRight(b)) | Up(UpRight(b)) |
			Up(UpLeft(b)) | Left(UpLeft(b)) |
			Left(DownLeft(b)) | Down(DownLeft(b)) |
			Down(DownRight(b)) | Right(DownRight(b))

		KingAttacks[sq] = UpRight(b) | Up(b) | UpLeft(b) | Left(b) |
			DownLeft(b) | Down(b) | DownRight(b) | Right(b)

		mask := rookMask[sq]
		for i := 0; i < 1<<uint(PopCount(mask)); i++ {
			occ := occupancySubset(mask, i)
			rookAttackTable[sq][((mask&occ)*rookMagic[sq])>>rookShift] =
				slideAttacks(sq, occ, rookShifts)
		}

		mask = bishopMask[sq]
		for i := 0; i < 1<<uint(PopCount(mask)); i++ {
			occ := occupancySubset(mask, i)
			bishopAttackTable[sq][((mask&occ)*bishopMagic[sq])>>bishopShift] =
				slideAttacks(sq, occ, bishopShifts)
		}
	}

	for s1 := 0; s1 < 64; s1++ {
		for s2 := 0; s2 < 64; s2++ {
			if QueenAttacks(s1, 0)&SquareMask[s2] == 0 {
				continue
			}
			delta := (s2 - s1) / ChebyshevDistance(s1, s2)
			for s := s1 + delta; s != s2; s += delta {
				betweenMask[s1][s2] |= SquareMask[s]
			}
		}
	}
}
