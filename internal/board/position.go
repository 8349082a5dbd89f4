package board

import (
	"hash/fnv"
	"math/bits"
)

// Position is an immutable snapshot of a chess position. It carries just
// enough state to answer the occupancy queries the evaluator needs; it
// does not generate moves.
type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings uint64
	White, Black                                  uint64

	WhiteMove     bool
	CastleRights  int
	EpSquare      int
	Rule50        int
	FullMoveCount int
}

// Pieces returns the bitboard of one piece type for one color.
func (p *Position) Pieces(c Color, pt int) uint64 {
	return p.PiecesByType(pt) & p.ByColor(c)
}

// PiecesByType returns the bitboard of a piece type for both colors.
func (p *Position) PiecesByType(pt int) uint64 {
	switch pt {
	case Pawn:
		return p.Pawns
	case Knight:
		return p.Knights
	case Bishop:
		return p.Bishops
	case Rook:
		return p.Rooks
	case Queen:
		return p.Queens
	case King:
		return p.Kings
	}
	return 0
}

// ByColor returns all pieces of one color.
func (p *Position) ByColor(c Color) uint64 {
	if c == White {
		return p.White
	}
	return p.Black
}

// All returns the full occupancy.
func (p *Position) All() uint64 {
	return p.White | p.Black
}

// KingSquare returns the king square for a color, or SquareNone if that
// king is absent.
func (p *Position) KingSquare(c Color) int {
	kings := p.Kings & p.ByColor(c)
	if kings == 0 {
		return SquareNone
	}
	return FirstOne(kings)
}

// CanCastle reports whether the given castling right is still available.
func (p *Position) CanCastle(right int) bool {
	return p.CastleRights&right != 0
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	if p.WhiteMove {
		return White
	}
	return Black
}

// FullMoveNumber returns the full move counter from the FEN.
func (p *Position) FullMoveNumber() int {
	return p.FullMoveCount
}

// WhatPiece returns the piece type occupying a square, or Empty.
func (p *Position) WhatPiece(sq int) int {
	b := SquareMask[sq]
	switch {
	case p.Pawns&b != 0:
		return Pawn
	case p.Knights&b != 0:
		return Knight
	case p.Bishops&b != 0:
		return Bishop
	case p.Rooks&b != 0:
		return Rook
	case p.Queens&b != 0:
		return Queen
	case p.Kings&b != 0:
		return King
	}
	return Empty
}

// PieceAttacks returns the pseudo-legal attack set of a piece standing on
// from, given total occupancy. Pawn attacks depend on color.
func PieceAttacks(pt, from int, c Color, occ uint64) uint64 {
	switch pt {
	case Pawn:
		return PawnAttacks(from, c)
	case Knight:
		return KnightAttacks[from]
	case Bishop:
		return BishopAttacks(from, occ)
	case Rook:
		return RookAttacks(from, occ)
	case Queen:
		return QueenAttacks(from, occ)
	case King:
		return KingAttacks[from]
	}
	return 0
}

// Attackers returns the pieces of color by that attack sq.
func (p *Position) Attackers(sq int, by Color) uint64 {
	occ := p.All()
	side := p.ByColor(by)
	var attackers uint64
	attackers |= PawnAttacks(sq, by.Opposite()) & p.Pawns & side
	attackers |= KnightAttacks[sq] & p.Knights & side
	attackers |= BishopAttacks(sq, occ) & (p.Bishops | p.Queens) & side
	attackers |= RookAttacks(sq, occ) & (p.Rooks | p.Queens) & side
	attackers |= KingAttacks[sq] & p.Kings & side
	return attackers
}

// Checkers returns the opponent pieces giving check to the side to move.
// Returns 0 when the side to move has no king.
func (p *Position) Checkers() uint64 {
	us := p.SideToMove()
	kingSq := p.KingSquare(us)
	if kingSq == SquareNone {
		return 0
	}
	return p.Attackers(kingSq, us.Opposite())
}

// Hash returns a stable 64-bit fingerprint of the position, suitable as a
// score-cache key. FNV-1a over the piece bitboards, castling rights, en
// passant square, and side to move.
func (p *Position) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	write(p.Pawns)
	write(p.Knights)
	write(p.Bishops)
	write(p.Rooks)
	write(p.Queens)
	write(p.Kings)
	write(p.White)
	write(uint64(p.CastleRights))
	write(uint64(int64(p.EpSquare)))
	if p.WhiteMove {
		write(1)
	} else {
		write(0)
	}
	return h.Sum64()
}

// Mirrored returns the position with colors swapped and ranks flipped.
// White's pawn on e2 becomes Black's pawn on e7, castling rights swap
// sides, and the side to move flips.
func (p *Position) Mirrored() Position {
	flip := bits.ReverseBytes64
	m := Position{
		Pawns:         flip(p.Pawns),
		Knights:       flip(p.Knights),
		Bishops:       flip(p.Bishops),
		Rooks:         flip(p.Rooks),
		Queens:        flip(p.Queens),
		Kings:         flip(p.Kings),
		White:         flip(p.Black),
		Black:         flip(p.White),
		WhiteMove:     !p.WhiteMove,
		Rule50:        p.Rule50,
		FullMoveCount: p.FullMoveCount,
	}
	if p.CastleRights&WhiteKingSide != 0 {
		m.CastleRights |= BlackKingSide
	}
	if p.CastleRights&WhiteQueenSide != 0 {
		m.CastleRights |= BlackQueenSide
	}
	if p.CastleRights&BlackKingSide != 0 {
		m.CastleRights |= WhiteKingSide
	}
	if p.CastleRights&BlackQueenSide != 0 {
		m.CastleRights |= WhiteQueenSide
	}
	if p.EpSquare != SquareNone {
		m.EpSquare = FlipSquare(p.EpSquare)
	} else {
		m.EpSquare = SquareNone
	}
	return m
}
