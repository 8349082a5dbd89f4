package rules

import "github.com/discochess/ruleval/internal/board"

// Target scans the position and yields zero or more measured contexts.
// Select is pure, never mutates the position, and emits contexts in
// ascending square order so evaluation is deterministic.
type Target interface {
	Select(ctx Context) []Context
}

// MaterialTarget yields one context per piece of the type and side, each
// with measurement 1.
type MaterialTarget struct {
	Piece int
	Side  Side
}

var _ Target = MaterialTarget{}

func (t MaterialTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		var pieces uint64
		if t.Piece == board.Empty {
			pieces = ctx.Pos.ByColor(color) &^ ctx.Pos.Kings
		} else {
			pieces = ctx.Pos.Pieces(color, t.Piece)
		}
		for x := pieces; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			out = append(out, ctx.WithSquare(sq).WithPieceType(ctx.Pos.WhatPiece(sq)))
		}
	}
	return out
}

// DevelopmentTarget yields a single context whose measurement is the
// count of the side's minor pieces off their starting squares.
type DevelopmentTarget struct {
	Side  Side
	Scope MinorScope
}

var _ Target = DevelopmentTarget{}

func (t DevelopmentTarget) Select(ctx Context) []Context {
	count := 0
	for _, color := range t.Side.Colors(ctx.Color) {
		count += minorsOffStart(ctx.Pos, color, t.Scope)
	}
	return []Context{ctx.WithMeasurement(float64(count))}
}

// BishopPairTarget yields one context with measurement 1 when the side
// holds at least two bishops, nothing otherwise.
type BishopPairTarget struct {
	Side Side
}

var _ Target = BishopPairTarget{}

func (t BishopPairTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		if board.MoreThanOne(ctx.Pos.Pieces(color, board.Bishop)) {
			out = append(out, ctx.WithPieceType(board.Bishop))
		}
	}
	return out
}

// CheckTarget reports check against the selected side's king: one context
// measuring the number of checking pieces, or nothing when not in check.
type CheckTarget struct {
	Side Side
}

var _ Target = CheckTarget{}

func (t CheckTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		kingSq := ctx.Pos.KingSquare(color)
		if kingSq == board.SquareNone {
			continue
		}
		checkers := ctx.Pos.Attackers(kingSq, color.Opposite())
		if checkers == 0 {
			continue
		}
		out = append(out, ctx.WithSquare(kingSq).WithMeasurement(float64(board.PopCount(checkers))))
	}
	return out
}

// FlatBonusTarget yields exactly one context with measurement 1: a global
// bonus independent of the board.
type FlatBonusTarget struct{}

var _ Target = FlatBonusTarget{}

func (FlatBonusTarget) Select(ctx Context) []Context {
	return []Context{ctx}
}

// PieceDistanceTarget yields one context measuring the minimum Manhattan
// distance between two piece sets, or nothing when either set is empty.
type PieceDistanceTarget struct {
	PieceA int
	SideA  Side
	PieceB int
	SideB  Side
}

var _ Target = PieceDistanceTarget{}

func (t PieceDistanceTarget) Select(ctx Context) []Context {
	dist, ok := minPieceDistance(ctx, t.PieceA, t.SideA, t.PieceB, t.SideB)
	if !ok {
		return nil
	}
	return []Context{ctx.WithMeasurement(float64(dist))}
}

// KingTropismTarget yields one context per piece of the type and side,
// measuring its Manhattan distance to the enemy king. Nothing is yielded
// when the enemy king is absent.
type KingTropismTarget struct {
	Piece int
	Side  Side
}

var _ Target = KingTropismTarget{}

func (t KingTropismTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		kingSq := ctx.Pos.KingSquare(color.Opposite())
		if kingSq == board.SquareNone {
			continue
		}
		var pieces uint64
		if t.Piece == board.Empty {
			pieces = ctx.Pos.ByColor(color) &^ ctx.Pos.Kings
		} else {
			pieces = ctx.Pos.Pieces(color, t.Piece)
		}
		for x := pieces; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			out = append(out, ctx.WithSquare(sq).
				WithPieceType(ctx.Pos.WhatPiece(sq)).
				WithMeasurement(float64(board.ManhattanDistance(sq, kingSq))))
		}
	}
	return out
}

// Space area per color: the central files of the three ranks in front of
// the pawn line (ranks 2-4 from each side's perspective, files c-f).
var spaceArea = [2]uint64{
	(board.FileCMask | board.FileDMask | board.FileEMask | board.FileFMask) &
		(board.Rank2Mask | board.Rank3Mask | board.Rank4Mask),
	(board.FileCMask | board.FileDMask | board.FileEMask | board.FileFMask) &
		(board.Rank7Mask | board.Rank6Mask | board.Rank5Mask),
}

// SpaceTarget yields one context measuring the number of safe squares in
// the side's space area: not occupied by own pawns and not attacked by
// enemy pawns.
type SpaceTarget struct {
	Side Side
}

var _ Target = SpaceTarget{}

func (t SpaceTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		enemyPawnAttacks := board.AllPawnAttacks(ctx.Pos.Pieces(color.Opposite(), board.Pawn), color.Opposite())
		safe := spaceArea[color] &^ ctx.Pos.Pieces(color, board.Pawn) &^ enemyPawnAttacks
		out = append(out, ctx.WithMeasurement(float64(board.PopCount(safe))))
	}
	return out
}
