package rules

import (
	"strings"

	"github.com/discochess/ruleval/internal/board"
)

// PSTPreset names a piece-square table family.
type PSTPreset int

const (
	PresetSimplified PSTPreset = iota
	PresetPestoMG
	PresetPestoEG
	PresetDevelopment
	PresetAggressive
	PresetDefensive
)

// ParsePSTPreset maps a preset alias. Default: PresetSimplified.
func ParsePSTPreset(s string) PSTPreset {
	switch normalizeAlias(s) {
	case "pestomg", "pestomiddlegame", "pestomid":
		return PresetPestoMG
	case "pestoeg", "pestoendgame", "pestoend":
		return PresetPestoEG
	case "development", "develop":
		return PresetDevelopment
	case "aggressive", "attack", "attacking":
		return PresetAggressive
	case "defensive", "defense", "defence", "solid":
		return PresetDefensive
	default:
		return PresetSimplified
	}
}

// PresetName returns the canonical alias for a preset.
func (p PSTPreset) PresetName() string {
	switch p {
	case PresetPestoMG:
		return "pesto_mg"
	case PresetPestoEG:
		return "pesto_eg"
	case PresetDevelopment:
		return "development"
	case PresetAggressive:
		return "aggressive"
	case PresetDefensive:
		return "defensive"
	}
	return "simplified"
}

func (p PSTPreset) String() string { return p.PresetName() }

// PSTValue reads a preset table for a piece on a square. White reads the
// table directly; Black reads the vertical mirror at sq^56.
func PSTValue(preset PSTPreset, pt, sq int, c board.Color) int {
	if pt < board.Pawn || pt > board.King || sq < 0 || sq > 63 {
		return 0
	}
	if c == board.Black {
		sq = board.FlipSquare(sq)
	}
	return int(pstTables[preset][pt][sq])
}

// PieceSquareTarget yields one context per piece of the type and side,
// measuring its preset table value.
type PieceSquareTarget struct {
	Piece  int // board.Empty scans every piece type
	Side   Side
	Preset PSTPreset
}

var _ Target = PieceSquareTarget{}

func (t PieceSquareTarget) Select(ctx Context) []Context {
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
			pt := ctx.Pos.WhatPiece(sq)
			out = append(out, ctx.WithSquare(sq).WithPieceType(pt).
				WithMeasurement(float64(PSTValue(t.Preset, pt, sq, color))))
		}
	}
	return out
}

// DescribePreset lists the preset aliases, for CLI help output.
func DescribePreset() string {
	names := []string{"simplified", "pesto_mg", "pesto_eg", "development", "aggressive", "defensive"}
	return strings.Join(names, ", ")
}
