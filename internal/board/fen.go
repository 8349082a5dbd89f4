package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN indicates the FEN string is malformed.
var ErrInvalidFEN = errors.New("board: invalid FEN notation")

// InitialPositionFEN is the standard starting position.
const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position. The halfmove clock and
// fullmove number are optional and default to 0 and 1.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return Position{}, ErrInvalidFEN
	}

	p := Position{EpSquare: SquareNone, FullMoveCount: 1}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return Position{}, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			mask := SquareMask[MakeSquare(file, rank)]
			switch ch {
			case 'P', 'p':
				p.Pawns |= mask
			case 'N', 'n':
				p.Knights |= mask
			case 'B', 'b':
				p.Bishops |= mask
			case 'R', 'r':
				p.Rooks |= mask
			case 'Q', 'q':
				p.Queens |= mask
			case 'K', 'k':
				p.Kings |= mask
			default:
				return Position{}, fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, ch)
			}
			if ch >= 'a' {
				p.Black |= mask
			} else {
				p.White |= mask
			}
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	switch parts[1] {
	case "w":
		p.WhiteMove = true
	case "b":
		p.WhiteMove = false
	default:
		return Position{}, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, parts[1])
	}

	if len(parts) > 2 && parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				p.CastleRights |= WhiteKingSide
			case 'Q':
				p.CastleRights |= WhiteQueenSide
			case 'k':
				p.CastleRights |= BlackKingSide
			case 'q':
				p.CastleRights |= BlackQueenSide
			default:
				return Position{}, fmt.Errorf("%w: bad castling flag %q", ErrInvalidFEN, ch)
			}
		}
	}

	if len(parts) > 3 && parts[3] != "-" {
		p.EpSquare = ParseSquare(parts[3])
		if p.EpSquare == SquareNone {
			return Position{}, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, parts[3])
		}
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return Position{}, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, parts[4])
		}
		p.Rule50 = n
	}

	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return Position{}, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, parts[5])
		}
		p.FullMoveCount = n
	}

	return p, nil
}

// MustParseFEN parses a FEN string and panics on error. Intended for
// tests and package-level constants.
func MustParseFEN(fen string) Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the position back to FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := MakeSquare(file, rank)
			pt := p.WhatPiece(sq)
			if pt == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			ch := pieceChars[pt]
			if p.Black&SquareMask[sq] != 0 {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastleRights&WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.CastleRights&WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.CastleRights&BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.CastleRights&BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(p.EpSquare))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveCount))
	return sb.String()
}

var pieceChars = [King + 1]byte{Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}
