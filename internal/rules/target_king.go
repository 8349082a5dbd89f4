package rules

import "github.com/discochess/ruleval/internal/board"

// KingZonePressureTarget yields one context measuring how many squares of
// the side's king zone (the king square and its neighbors) are attacked
// by enemy pieces. With no king the target yields nothing.
type KingZonePressureTarget struct {
	Side Side
}

var _ Target = KingZonePressureTarget{}

func (t KingZonePressureTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		zone := kingZone(ctx.Pos, color)
		if zone == 0 {
			continue
		}
		pressure := zone & attackedBy(ctx.Pos, color.Opposite())
		out = append(out, ctx.WithSquare(ctx.Pos.KingSquare(color)).
			WithMeasurement(float64(board.PopCount(pressure))))
	}
	return out
}

// Center region used by the weak-square scan.
var centerMask = (board.FileCMask | board.FileDMask | board.FileEMask | board.FileFMask) &
	(board.Rank3Mask | board.Rank4Mask | board.Rank5Mask | board.Rank6Mask)

// Opponent camp per color: the far three ranks.
var opponentCamp = [2]uint64{
	board.Rank6Mask | board.Rank7Mask | board.Rank8Mask,
	board.Rank3Mask | board.Rank2Mask | board.Rank1Mask,
}

// WeakSquaresTarget yields one context per weak square in a region: a
// square no pawn of the side defends now or could defend after advancing
// on an adjacent file.
type WeakSquaresTarget struct {
	Region WeakRegion
	Side   Side
}

var _ Target = WeakSquaresTarget{}

func (t WeakSquaresTarget) Select(ctx Context) []Context {
	var out []Context
	for _, color := range t.Side.Colors(ctx.Color) {
		var region uint64
		switch t.Region {
		case RegionCenter:
			region = centerMask
		case RegionOpponentCamp:
			region = opponentCamp[color]
		default:
			region = kingZone(ctx.Pos, color)
		}
		for x := region; x != 0; x &= x - 1 {
			sq := board.FirstOne(x)
			if pawnGuardable(ctx.Pos, color, sq) {
				continue
			}
			out = append(out, ctx.WithSquare(sq))
		}
	}
	return out
}
