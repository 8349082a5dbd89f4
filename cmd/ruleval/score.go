package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/ruleval"
)

var scoreCmd = &cobra.Command{
	Use:   "score [FEN]",
	Short: "Score a chess position",
	Long: `Score a chess position given in FEN notation, in centipawns from the
chosen perspective.

Examples:
  # Starting position with the default ruleset
  ruleval score "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Black's perspective with a custom ruleset, including the per-rule breakdown
  ruleval score --ruleset my-rules.json --color black --explain "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var (
	scoreColor   string
	scoreExplain bool
	showTiming   bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreColor, "color", "white", "perspective to score from (white or black)")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "show per-rule contributions")
	scoreCmd.Flags().BoolVar(&showTiming, "timing", false, "show evaluation timing")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	fen := args[0]

	color := ruleval.White
	switch strings.ToLower(scoreColor) {
	case "white", "w":
	case "black", "b":
		color = ruleval.Black
	default:
		return fmt.Errorf("unknown color %q (want white or black)", scoreColor)
	}

	eval, err := newEvaluator(rulesetSpec)
	if err != nil {
		return err
	}
	defer eval.Close()

	start := time.Now()
	score, err := eval.Score(fen, color)
	if err != nil {
		return fmt.Errorf("scoring position: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("Ruleset: %s (%d rules)\n", eval.RulesetName(), eval.ActiveRules())
	fmt.Printf("Score:   %+.1f cp (%s)\n", score, color)
	if showTiming {
		fmt.Printf("Time:    %s\n", elapsed)
	}

	if scoreExplain {
		breakdown, err := eval.Explain(fen, color)
		if err != nil {
			return fmt.Errorf("explaining score: %w", err)
		}
		printBreakdown(breakdown)
	}
	return nil
}

func printBreakdown(b *ruleval.Breakdown) {
	fmt.Println("\nBy category:")
	categories := make([]string, 0, len(b.Categories))
	for cat := range b.Categories {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Printf("  %-20s %+.1f\n", cat, b.Categories[cat])
	}

	fmt.Println("\nBy rule:")
	for _, rs := range b.Rules {
		if !rs.Matched {
			fmt.Printf("  %-32s (gated)\n", rs.Name)
			continue
		}
		fmt.Printf("  %-32s %+.1f", rs.Name, rs.Weighted)
		if rs.Weighted != rs.Raw {
			fmt.Printf("  (raw %+.1f)", rs.Raw)
		}
		fmt.Println()
	}
}
