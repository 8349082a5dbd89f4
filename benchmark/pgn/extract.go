// Package pgn extracts FEN positions from PGN game collections for
// ruleset benchmarking.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notnil/chess"
)

// Options controls how positions are sampled from games.
type Options struct {
	// SkipPlies drops the first n plies of every game. Openings are
	// heavily duplicated across games and mostly book theory, so
	// skipping them gives a more discriminating sample.
	SkipPlies int

	// SampleEvery keeps one position per n plies after the skip
	// window. Zero or one keeps every position.
	SampleEvery int

	// MaxPositions caps the total number of positions extracted.
	// Zero means no cap.
	MaxPositions int
}

// Extract reads games from a PGN stream and returns the sampled
// positions as full six-field FEN strings, deduplicated, in the order
// they first appear.
func Extract(r io.Reader, opts Options) ([]string, error) {
	games, err := ExtractGames(r, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var fens []string
	for _, game := range games {
		for _, fen := range game {
			if _, ok := seen[fen]; ok {
				continue
			}
			seen[fen] = struct{}{}
			fens = append(fens, fen)
			if opts.MaxPositions > 0 && len(fens) >= opts.MaxPositions {
				return fens, nil
			}
		}
	}
	return fens, nil
}

// ExtractGames is like Extract but preserves game boundaries and
// duplicates. Games that fail to parse are skipped.
func ExtractGames(r io.Reader, opts Options) ([][]string, error) {
	var games [][]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var gameText strings.Builder
	inGame := false

	flush := func() {
		if gameText.Len() == 0 {
			return
		}
		fens, err := gamePositions(gameText.String(), opts)
		if err == nil && len(fens) > 0 {
			games = append(games, fens)
		}
		gameText.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "[Event ") {
			if inGame {
				flush()
			}
			inGame = true
		}
		if inGame {
			gameText.WriteString(line)
			gameText.WriteString("\n")
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	return games, nil
}

// Stats summarizes an extraction run.
type Stats struct {
	TotalGames      int
	TotalPositions  int
	UniquePositions int
	AvgPliesPerGame float64
}

// ExtractWithStats extracts positions and reports how much of the
// stream survived sampling and deduplication.
func ExtractWithStats(r io.Reader, opts Options) ([]string, Stats, error) {
	games, err := ExtractGames(r, opts)
	if err != nil {
		return nil, Stats{}, err
	}

	seen := make(map[string]struct{})
	var fens []string
	var total int
	for _, game := range games {
		total += len(game)
		for _, fen := range game {
			if _, ok := seen[fen]; ok {
				continue
			}
			seen[fen] = struct{}{}
			if opts.MaxPositions == 0 || len(fens) < opts.MaxPositions {
				fens = append(fens, fen)
			}
		}
	}

	stats := Stats{
		TotalGames:      len(games),
		TotalPositions:  total,
		UniquePositions: len(seen),
	}
	if len(games) > 0 {
		stats.AvgPliesPerGame = float64(total) / float64(len(games))
	}
	return fens, stats, nil
}

// gamePositions parses one PGN game and samples its positions.
func gamePositions(pgnText string, opts Options) ([]string, error) {
	pgnFunc, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return nil, err
	}
	game := chess.NewGame(pgnFunc)

	every := opts.SampleEvery
	if every < 1 {
		every = 1
	}

	var fens []string
	for i, pos := range game.Positions() {
		if i < opts.SkipPlies {
			continue
		}
		if (i-opts.SkipPlies)%every != 0 {
			continue
		}
		fens = append(fens, pos.String())
	}
	return fens, nil
}
