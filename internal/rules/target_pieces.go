package rules

import (
	"math/bits"

	"github.com/discochess/ruleval/internal/board"
)

// MobilityTarget yields one context per piece of the type, measuring its
// pseudo-legal attack squares excluding own-occupied squares. Moves to
// empty squares count 1; captures count CaptureWeight, which may be
// fractional.
type MobilityTarget struct {
	Piece         int
	Side          Side
	CaptureWeight float64
}

var _ Target = MobilityTarget{}

func (t MobilityTarget) Select(ctx Context) []Context {
	var out []Context
	occ := ctx.Pos.All()
	for _, color := range t.Side.Colors(ctx.Color) {
		own := ctx.Pos.ByColor(color)
		enemy := ctx.Pos.ByColor(color.Opposite())
		var pieces uint64
		if t.Piece == board.Empty {
			pieces = own
		} else {
			pieces = ctx.Pos.Pieces(color, t.Piece)
		}
		for x := pieces; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			pt := ctx.Pos.WhatPiece(sq)
			attacks := board.PieceAttacks(pt, sq, color, occ) &^ own
			quiet := board.PopCount(attacks &^ enemy)
			captures := board.PopCount(attacks & enemy)
			out = append(out, ctx.WithSquare(sq).WithPieceType(pt).
				WithMeasurement(float64(quiet)+t.CaptureWeight*float64(captures)))
		}
	}
	return out
}

// DefenseTarget yields one context per piece of the type, measuring how
// many friendly pieces defend its square. Defender restricts the count to
// a single defender type; board.Empty counts them all.
type DefenseTarget struct {
	Piece    int
	Side     Side
	Defender int
}

var _ Target = DefenseTarget{}

func (t DefenseTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		var pieces uint64
		if t.Piece == board.Empty {
			pieces = ctx.Pos.ByColor(color)
		} else {
			pieces = ctx.Pos.Pieces(color, t.Piece)
		}
		for x := pieces; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			defenders := ctx.Pos.Attackers(sq, color) &^ board.SquareMask[sq]
			if t.Defender != board.Empty {
				defenders &= ctx.Pos.PiecesByType(t.Defender)
			}
			out = append(out, ctx.WithSquare(sq).
				WithPieceType(ctx.Pos.WhatPiece(sq)).
				WithMeasurement(float64(board.PopCount(defenders))))
		}
	}
	return out
}

// Outpost ranks: the opponent's half where a minor piece can sit, ranks
// 4-6 for White and 3-5 for Black.
var outpostRanks = [2]uint64{
	board.Rank4Mask | board.Rank5Mask | board.Rank6Mask,
	board.Rank5Mask | board.Rank4Mask | board.Rank3Mask,
}

// OutpostTarget yields one context per piece of the type sitting on an
// outpost: a square in the opponent's half that no enemy pawn can ever
// attack.
type OutpostTarget struct {
	Piece int // board.Empty scans both minor piece types
	Side  Side
}

var _ Target = OutpostTarget{}

func (t OutpostTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		var pieces uint64
		if t.Piece == board.Empty {
			pieces = ctx.Pos.Pieces(color, board.Knight) | ctx.Pos.Pieces(color, board.Bishop)
		} else {
			pieces = ctx.Pos.Pieces(color, t.Piece)
		}
		pieces &= outpostRanks[color]
		for x := pieces; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			if pawnGuardable(ctx.Pos, color.Opposite(), sq) {
				continue
			}
			out = append(out, ctx.WithSquare(sq).WithPieceType(ctx.Pos.WhatPiece(sq)))
		}
	}
	return out
}

// BatteryTarget yields one context per battery: two or more aligned
// sliders of one color with no blocker between the extreme members.
// File/rank groups of rooks and queens count once per group; diagonal
// groups of bishops and queens are found by walking attack sets. The
// context square is the battery's lowest square and the measurement is
// the number of pieces in the battery.
type BatteryTarget struct {
	Axis BatteryAxis
	Side Side
}

var _ Target = BatteryTarget{}

func (t BatteryTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		if t.Axis == AxisAll || t.Axis == AxisRook {
			out = append(out, rookBatteries(ctx, color)...)
		}
		if t.Axis == AxisAll || t.Axis == AxisBishop {
			out = append(out, bishopBatteries(ctx, color)...)
		}
	}
	return out
}

func rookBatteries(ctx Context, color board.Color) []Context {
	var out []Context
	sliders := (ctx.Pos.Rooks | ctx.Pos.Queens) & ctx.Pos.ByColor(color)
	occ := ctx.Pos.All()

	lines := make([]uint64, 0, 16)
	for file := 0; file < 8; file++ {
		lines = append(lines, board.FileMask[file])
	}
	for rank := 0; rank < 8; rank++ {
		lines = append(lines, board.RankMask[rank])
	}

	for _, line := range lines {
		group := sliders & line
		if !board.MoreThanOne(group) {
			continue
		}
		low := board.FirstOne(group)
		high := 63 - bits.LeadingZeros64(group)
		// Blockers are non-members sitting between the extreme pieces.
		if board.Between(low, high)&occ&^group != 0 {
			continue
		}
		out = append(out, ctx.WithSquare(low).
			WithPieceType(ctx.Pos.WhatPiece(low)).
			WithMeasurement(float64(board.PopCount(group))))
	}
	return out
}

func bishopBatteries(ctx Context, color board.Color) []Context {
	var out []Context
	sliders := (ctx.Pos.Bishops | ctx.Pos.Queens) & ctx.Pos.ByColor(color)
	occ := ctx.Pos.All()

	var visited uint64
	for x := sliders; x != 0; x &= x - 1 {
		sq := board.FirstOne(x)
		if visited&board.SquareMask[sq] != 0 {
			continue
		}
		// Every same-colored slider on this piece's diagonal attack set
		// joins its battery.
		group := board.SquareMask[sq] | board.BishopAttacks(sq, occ)&sliders
		visited |= group
		if !board.MoreThanOne(group) {
			continue
		}
		low := board.FirstOne(group)
		out = append(out, ctx.WithSquare(low).
			WithPieceType(ctx.Pos.WhatPiece(low)).
			WithMeasurement(float64(board.PopCount(group))))
	}
	return out
}

// RookFileTarget yields one context per rook of the side standing on a
// file in the configured state (typically open or semi-open).
type RookFileTarget struct {
	State FileState
	Side  Side
}

var _ Target = RookFileTarget{}

func (t RookFileTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		mine := ctx.Pos.Pieces(color, board.Pawn)
		theirs := ctx.Pos.Pieces(color.Opposite(), board.Pawn)
		for x := ctx.Pos.Pieces(color, board.Rook); x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			fileMask := board.FileMask[board.File(sq)]
			ok := false
			switch t.State {
			case FileSemiOpen:
				ok = mine&fileMask == 0 && theirs&fileMask != 0
			case FileClosed:
				ok = mine&fileMask != 0 && theirs&fileMask != 0
			case FileHasMyPawn:
				ok = mine&fileMask != 0
			case FileHasEnemyPawn:
				ok = theirs&fileMask != 0
			default: // FileOpen
				ok = mine&fileMask == 0 && theirs&fileMask == 0
			}
			if ok {
				out = append(out, ctx.WithSquare(sq).WithPieceType(board.Rook))
			}
		}
	}
	return out
}
