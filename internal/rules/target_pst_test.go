package rules

import (
	"testing"

	"github.com/discochess/ruleval/internal/board"
)

func TestParsePSTPreset(t *testing.T) {
	tests := []struct {
		in   string
		want PSTPreset
	}{
		{"simplified", PresetSimplified},
		{"pesto_mg", PresetPestoMG},
		{"pesto_eg", PresetPestoEG},
		{"development", PresetDevelopment},
		{"aggressive", PresetAggressive},
		{"defensive", PresetDefensive},
		{"no-such-preset", PresetSimplified},
		{"", PresetSimplified},
	}
	for _, tt := range tests {
		if got := ParsePSTPreset(tt.in); got != tt.want {
			t.Errorf("ParsePSTPreset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPSTValueSimplifiedAnchors(t *testing.T) {
	tests := []struct {
		pt   int
		sq   string
		want int
	}{
		{board.Pawn, "e2", -20},
		{board.Pawn, "d4", 20},
		{board.Pawn, "a7", 50},
		{board.Knight, "a1", -50},
		{board.Knight, "d4", 20},
		{board.Rook, "d1", 5},
		{board.King, "g1", 30},
		{board.King, "e4", -40},
	}
	for _, tt := range tests {
		square := board.ParseSquare(tt.sq)
		if got := PSTValue(PresetSimplified, tt.pt, square, board.White); got != tt.want {
			t.Errorf("white %s on %s = %d, want %d", PieceName(tt.pt), tt.sq, got, tt.want)
		}
	}
}

func TestPSTValueBlackMirrors(t *testing.T) {
	presets := []PSTPreset{
		PresetSimplified, PresetPestoMG, PresetPestoEG,
		PresetDevelopment, PresetAggressive, PresetDefensive,
	}
	for _, preset := range presets {
		for pt := board.Pawn; pt <= board.King; pt++ {
			for sq := 0; sq < 64; sq++ {
				white := PSTValue(preset, pt, sq, board.White)
				black := PSTValue(preset, pt, board.FlipSquare(sq), board.Black)
				if white != black {
					t.Fatalf("%v %s: white %s (%d) != black %s (%d)",
						preset, PieceName(pt),
						board.SquareName(sq), white,
						board.SquareName(board.FlipSquare(sq)), black)
				}
			}
		}
	}
}

func TestPSTValueOutOfRange(t *testing.T) {
	if got := PSTValue(PresetSimplified, board.Empty, board.SquareA1, board.White); got != 0 {
		t.Errorf("empty piece = %d, want 0", got)
	}
	if got := PSTValue(PresetSimplified, board.Pawn, board.SquareNone, board.White); got != 0 {
		t.Errorf("no square = %d, want 0", got)
	}
}

func TestPieceSquareTarget(t *testing.T) {
	// Lone white pawn on d4 against a lone black pawn on d5: the
	// simplified table scores both 20 from their own side.
	ctx := whiteCtx(t, "4k3/8/8/3p4/3P4/8/8/4K3 w - - 0 1")

	white := PieceSquareTarget{Preset: PresetSimplified, Piece: board.Pawn, Side: SideMine}.Select(ctx)
	if len(white) != 1 || white[0].Measurement != 20 {
		t.Fatalf("white pawn: got %v", white)
	}

	black := PieceSquareTarget{Preset: PresetSimplified, Piece: board.Pawn, Side: SideOpponent}.Select(ctx)
	if len(black) != 1 || black[0].Measurement != 20 {
		t.Fatalf("black pawn: got %v", black)
	}
}
