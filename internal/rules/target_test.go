package rules

import (
	"testing"

	"github.com/discochess/ruleval/internal/board"
)

func sq(t *testing.T, name string) int {
	t.Helper()
	s := board.ParseSquare(name)
	if s == board.SquareNone {
		t.Fatalf("bad square %q", name)
	}
	return s
}

func TestMaterialTarget(t *testing.T) {
	ctx := whiteCtx(t, board.InitialPositionFEN)
	tests := []struct {
		name   string
		target MaterialTarget
		count  int
	}{
		{"my pawns", MaterialTarget{Piece: board.Pawn, Side: SideMine}, 8},
		{"my knights", MaterialTarget{Piece: board.Knight, Side: SideMine}, 2},
		{"both queens", MaterialTarget{Piece: board.Queen, Side: SideBoth}, 2},
		{"all but kings", MaterialTarget{Piece: board.Empty, Side: SideMine}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.target.Select(ctx)
			if len(out) != tt.count {
				t.Fatalf("got %d contexts, want %d", len(out), tt.count)
			}
			for _, c := range out {
				if c.Measurement != 1 {
					t.Errorf("measurement %v, want 1", c.Measurement)
				}
				if c.Square == board.SquareNone {
					t.Error("square unset")
				}
			}
		})
	}
}

func TestDevelopmentTarget(t *testing.T) {
	// White knights developed, bishops home.
	ctx := whiteCtx(t, "rnbqkbnr/pppppppp/8/8/8/2N2N2/PPPPPPPP/R1BQKB1R w KQkq - 0 1")
	out := DevelopmentTarget{Side: SideMine, Scope: MinorsAll}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d contexts, want 1", len(out))
	}
	if out[0].Measurement != 2 {
		t.Errorf("measurement %v, want 2", out[0].Measurement)
	}
}

func TestBishopPairTarget(t *testing.T) {
	full := whiteCtx(t, board.InitialPositionFEN)
	if out := (BishopPairTarget{Side: SideMine}).Select(full); len(out) != 1 {
		t.Errorf("initial position: got %d contexts, want 1", len(out))
	}
	single := whiteCtx(t, "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	if out := (BishopPairTarget{Side: SideMine}).Select(single); len(out) != 0 {
		t.Errorf("one bishop: got %d contexts, want 0", len(out))
	}
}

func TestCheckTarget(t *testing.T) {
	// Black king on e8 is checked by the rook on e7.
	pos := board.MustParseFEN("4k3/4R3/8/8/8/8/8/4K3 b - - 0 1")
	ctx := NewContext(&pos, board.Black)
	out := CheckTarget{Side: SideMine}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d contexts, want 1", len(out))
	}
	if out[0].Measurement != 1 {
		t.Errorf("checker count %v, want 1", out[0].Measurement)
	}
	if out[0].Square != board.SquareE8 {
		t.Errorf("square %v, want e8", board.SquareName(out[0].Square))
	}

	quiet := whiteCtx(t, board.InitialPositionFEN)
	if out := (CheckTarget{Side: SideBoth}).Select(quiet); len(out) != 0 {
		t.Errorf("initial position: got %d contexts, want 0", len(out))
	}
}

func TestMobilityTarget(t *testing.T) {
	// Initial position knights each reach two empty squares.
	ctx := whiteCtx(t, board.InitialPositionFEN)
	out := MobilityTarget{Piece: board.Knight, Side: SideMine, CaptureWeight: 1}.Select(ctx)
	if len(out) != 2 {
		t.Fatalf("got %d contexts, want 2", len(out))
	}
	for _, c := range out {
		if c.Measurement != 2 {
			t.Errorf("knight on %s: mobility %v, want 2", board.SquareName(c.Square), c.Measurement)
		}
	}
}

func TestMobilityTargetCaptureWeight(t *testing.T) {
	// Rook a1 vs pawn a4: quiet squares a2, a3 and b1, c1, d1 (the e1
	// king blocks the rank), half weight for capturing a4.
	ctx := whiteCtx(t, "4k3/8/8/8/p7/8/8/R3K3 w - - 0 1")
	out := MobilityTarget{Piece: board.Rook, Side: SideMine, CaptureWeight: 0.5}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d contexts, want 1", len(out))
	}
	want := float64(2+3) + 0.5
	if out[0].Measurement != want {
		t.Errorf("measurement %v, want %v", out[0].Measurement, want)
	}
}

func TestDefenseTarget(t *testing.T) {
	// Pawn d4 defended by pawns c3 and e3.
	ctx := whiteCtx(t, "4k3/8/8/8/3P4/2P1P3/8/4K3 w - - 0 1")
	out := DefenseTarget{Piece: board.Pawn, Side: SideMine, Defender: board.Pawn}.Select(ctx)
	bySquare := map[int]float64{}
	for _, c := range out {
		bySquare[c.Square] = c.Measurement
	}
	if got := bySquare[sq(t, "d4")]; got != 2 {
		t.Errorf("d4 defenders = %v, want 2", got)
	}
	if got := bySquare[sq(t, "c3")]; got != 0 {
		t.Errorf("c3 defenders = %v, want 0", got)
	}
}

func TestPassedPawnTarget(t *testing.T) {
	// a4 is passed; e4 is stopped by the f6 pawn's forward span.
	ctx := whiteCtx(t, "4k3/8/5p2/8/P3P3/8/8/4K3 w - - 0 1")

	each := PassedPawnTarget{Side: SideMine, Metric: PassedEach}.Select(ctx)
	if len(each) != 1 {
		t.Fatalf("got %d passers, want 1", len(each))
	}
	if each[0].Square != sq(t, "a4") || each[0].Measurement != 1 {
		t.Errorf("passer = %s m=%v, want a4 m=1", board.SquareName(each[0].Square), each[0].Measurement)
	}

	rank := PassedPawnTarget{Side: SideMine, Metric: PassedRank}.Select(ctx)
	if len(rank) != 1 || rank[0].Measurement != 4 {
		t.Fatalf("rank metric = %v, want 4", rank[0].Measurement)
	}

	// Mirror: black's passer on a5 measures rank 4 from black's side.
	mirrored := board.MustParseFEN("4k3/8/8/p3p3/8/5P2/8/4K3 w - - 0 1")
	blackCtx := NewContext(&mirrored, board.Black)
	mrank := PassedPawnTarget{Side: SideMine, Metric: PassedRank}.Select(blackCtx)
	if len(mrank) != 1 || mrank[0].Measurement != 4 {
		t.Fatalf("mirrored rank metric = %v, want 4", mrank[0].Measurement)
	}
}

func TestPawnStructureTarget(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		class PawnClass
		want  []string
	}{
		// The rear pawn of a doubled pair is not the extra one.
		{"doubled", "4k3/8/8/8/4P3/8/4P3/4K3 w - - 0 1", PawnDoubled, []string{"e4"}},
		{"no doubled", board.InitialPositionFEN, PawnDoubled, nil},
		{"isolated", "4k3/8/8/8/4P3/8/4P3/4K3 w - - 0 1", PawnIsolated, []string{"e2", "e4"}},
		{"connected", "4k3/8/8/8/4P3/3P4/8/4K3 w - - 0 1", PawnConnected, []string{"e4"}},
		{"phalanx pair counts once", "4k3/8/8/8/3PP3/8/8/4K3 w - - 0 1", PawnPhalanx, []string{"d4"}},
		{"backward", "4k3/8/8/2p5/8/3P4/8/4K3 w - - 0 1", PawnBackward, []string{"d3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := whiteCtx(t, tt.fen)
			out := PawnStructureTarget{Class: tt.class, Side: SideMine}.Select(ctx)
			if len(out) != len(tt.want) {
				t.Fatalf("got %d pawns, want %d", len(out), len(tt.want))
			}
			for i, c := range out {
				if got := board.SquareName(c.Square); got != tt.want[i] {
					t.Errorf("pawn %d = %s, want %s", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestOutpostTarget(t *testing.T) {
	// Knight d5 with no black pawn able to ever attack d5.
	free := whiteCtx(t, "4k3/8/8/3N4/8/8/8/4K3 w - - 0 1")
	out := OutpostTarget{Piece: board.Knight, Side: SideMine}.Select(free)
	if len(out) != 1 || out[0].Square != sq(t, "d5") {
		t.Fatalf("free knight: got %d contexts", len(out))
	}

	// A c7 pawn can advance to c6 and hit d5: no outpost.
	guarded := whiteCtx(t, "4k3/2p5/8/3N4/8/8/8/4K3 w - - 0 1")
	if out := (OutpostTarget{Piece: board.Knight, Side: SideMine}).Select(guarded); len(out) != 0 {
		t.Errorf("guardable square: got %d contexts, want 0", len(out))
	}

	// A pawn already past the guard rank cannot come back.
	passed := whiteCtx(t, "4k3/8/8/3N4/2p5/8/8/4K3 w - - 0 1")
	if out := (OutpostTarget{Piece: board.Knight, Side: SideMine}).Select(passed); len(out) != 1 {
		t.Errorf("bypassed pawn: got %d contexts, want 1", len(out))
	}

	// Rank 3 is not outpost territory for White.
	shallow := whiteCtx(t, "4k3/8/8/8/8/3N4/8/4K3 w - - 0 1")
	if out := (OutpostTarget{Piece: board.Knight, Side: SideMine}).Select(shallow); len(out) != 0 {
		t.Errorf("own half: got %d contexts, want 0", len(out))
	}
}

func TestBatteryTarget(t *testing.T) {
	// Queen d1 and rook d5 aligned on the d-file: one battery, not two.
	ctx := whiteCtx(t, "4k3/8/8/3R4/8/8/8/3QK3 w - - 0 1")
	out := BatteryTarget{Axis: AxisRook, Side: SideMine}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d batteries, want 1", len(out))
	}
	if out[0].Square != board.SquareD1 {
		t.Errorf("battery square = %s, want d1", board.SquareName(out[0].Square))
	}
	if out[0].Measurement != 2 {
		t.Errorf("battery size = %v, want 2", out[0].Measurement)
	}

	// A pawn between them breaks the battery.
	blocked := whiteCtx(t, "4k3/8/8/3R4/8/3P4/8/3QK3 w - - 0 1")
	if out := (BatteryTarget{Axis: AxisRook, Side: SideMine}).Select(blocked); len(out) != 0 {
		t.Errorf("blocked file: got %d batteries, want 0", len(out))
	}

	// Three sliders on one file are still one battery of size 3.
	triple := whiteCtx(t, "3r4/8/3r4/8/3q4/8/8/3K4 w - - 0 1")
	tctx := NewContext(triple.Pos, board.Black)
	tout := BatteryTarget{Axis: AxisRook, Side: SideMine}.Select(tctx)
	if len(tout) != 1 || tout[0].Measurement != 3 {
		t.Fatalf("triple battery: got %d batteries", len(tout))
	}
}

func TestBishopBatteryTarget(t *testing.T) {
	// Queen b2 and bishop c3 on the long diagonal.
	ctx := whiteCtx(t, "4k3/8/8/8/8/2B5/1Q6/4K3 w - - 0 1")
	out := BatteryTarget{Axis: AxisBishop, Side: SideMine}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d batteries, want 1", len(out))
	}
	if out[0].Square != sq(t, "b2") || out[0].Measurement != 2 {
		t.Errorf("battery at %s size %v, want b2 size 2", board.SquareName(out[0].Square), out[0].Measurement)
	}

	// The rook axis must not see a diagonal pair.
	if out := (BatteryTarget{Axis: AxisRook, Side: SideMine}).Select(ctx); len(out) != 0 {
		t.Errorf("rook axis over diagonal: got %d, want 0", len(out))
	}
}

func TestRookFileTarget(t *testing.T) {
	// Rook a1 on an open file, rook e1 behind its own pawn.
	ctx := whiteCtx(t, "4k3/8/8/8/8/8/4P3/R3KR2 w - - 0 1")
	open := RookFileTarget{State: FileOpen, Side: SideMine}.Select(ctx)
	if len(open) != 2 {
		t.Fatalf("open files: got %d rooks, want 2", len(open))
	}
	mine := RookFileTarget{State: FileHasMyPawn, Side: SideMine}.Select(ctx)
	if len(mine) != 0 {
		t.Errorf("own-pawn files: got %d rooks, want 0", len(mine))
	}
}

func TestKingZonePressureTarget(t *testing.T) {
	// Rook d1 rakes the d-file into the black king's zone (d7, d8).
	ctx := whiteCtx(t, "3k4/8/8/8/8/8/8/3RK3 w - - 0 1")
	out := KingZonePressureTarget{Side: SideOpponent}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d contexts, want 1", len(out))
	}
	if out[0].Measurement != 2 {
		t.Errorf("pressure = %v, want 2", out[0].Measurement)
	}

	kingless := whiteCtx(t, "8/8/8/8/8/8/8/3RK3 w - - 0 1")
	if out := (KingZonePressureTarget{Side: SideOpponent}).Select(kingless); len(out) != 0 {
		t.Errorf("no king: got %d contexts, want 0", len(out))
	}
}

func TestWeakSquaresTarget(t *testing.T) {
	// No pawns at all: every square in the center region is weak.
	ctx := whiteCtx(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	out := WeakSquaresTarget{Region: RegionCenter, Side: SideMine}.Select(ctx)
	if len(out) != board.PopCount(centerMask) {
		t.Fatalf("got %d weak squares, want %d", len(out), board.PopCount(centerMask))
	}

	// A d2 pawn can eventually guard e3..e6 and c3..c6.
	guarded := whiteCtx(t, "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	gout := WeakSquaresTarget{Region: RegionCenter, Side: SideMine}.Select(guarded)
	if len(gout) != board.PopCount(centerMask)-8 {
		t.Errorf("got %d weak squares, want %d", len(gout), board.PopCount(centerMask)-8)
	}
}

func TestKingTropismTarget(t *testing.T) {
	ctx := whiteCtx(t, board.InitialPositionFEN)
	out := KingTropismTarget{Piece: board.Knight, Side: SideMine}.Select(ctx)
	if len(out) != 2 {
		t.Fatalf("got %d contexts, want 2", len(out))
	}
	// b1 to e8: 3 files + 7 ranks; g1 to e8: 2 files + 7 ranks.
	wantBySquare := map[int]float64{board.SquareB1: 10, board.SquareG1: 9}
	for _, c := range out {
		if want := wantBySquare[c.Square]; c.Measurement != want {
			t.Errorf("knight %s: distance %v, want %v", board.SquareName(c.Square), c.Measurement, want)
		}
	}
}

func TestPieceDistanceTarget(t *testing.T) {
	ctx := whiteCtx(t, board.InitialPositionFEN)
	out := PieceDistanceTarget{
		PieceA: board.King, SideA: SideMine,
		PieceB: board.King, SideB: SideOpponent,
	}.Select(ctx)
	if len(out) != 1 || out[0].Measurement != 7 {
		t.Fatalf("king distance: got %v", out)
	}

	bare := whiteCtx(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	empty := PieceDistanceTarget{
		PieceA: board.Queen, SideA: SideMine,
		PieceB: board.King, SideB: SideOpponent,
	}.Select(bare)
	if len(empty) != 0 {
		t.Errorf("empty set: got %d contexts, want 0", len(empty))
	}
}

func TestSpaceTarget(t *testing.T) {
	// Initial position: 12 area squares minus the 4 own pawns on c2-f2.
	ctx := whiteCtx(t, board.InitialPositionFEN)
	out := SpaceTarget{Side: SideMine}.Select(ctx)
	if len(out) != 1 {
		t.Fatalf("got %d contexts, want 1", len(out))
	}
	if out[0].Measurement != 8 {
		t.Errorf("space = %v, want 8", out[0].Measurement)
	}
}

func TestFlatBonusTarget(t *testing.T) {
	ctx := whiteCtx(t, board.InitialPositionFEN)
	out := FlatBonusTarget{}.Select(ctx)
	if len(out) != 1 || out[0].Measurement != 1 {
		t.Fatalf("got %v", out)
	}
}
