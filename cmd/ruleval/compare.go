package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/ruleval/benchmark/analysis"
	"github.com/discochess/ruleval/benchmark/pgn"
	"github.com/discochess/ruleval/benchmark/reporting"
)

var compareCmd = &cobra.Command{
	Use:   "compare [RULESET1] [RULESET2]",
	Short: "Compare two rulesets over positions from a PGN file",
	Long: `Compare two rulesets by scoring the positions of a PGN game
collection with both and reporting agreement statistics.

Each ruleset argument is a preset name or a path to a ruleset JSON
document.

Examples:
  # Shannon vs a modern material ruleset over a game collection
  ruleval compare shannon1950 fruit2005 --pgn games.pgn

  # Write a Markdown report, skipping book moves
  ruleval compare my-rules.json fruit2005 --pgn games.pgn --skip-plies 16 --markdown report.md`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

var (
	pgnPath      string
	skipPlies    int
	sampleEvery  int
	maxPositions int
	workers      int
	markdownPath string
)

func init() {
	compareCmd.Flags().StringVar(&pgnPath, "pgn", "", "PGN file to sample positions from (required)")
	compareCmd.Flags().IntVar(&skipPlies, "skip-plies", 8, "skip the first n plies of every game")
	compareCmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "keep one position per n plies")
	compareCmd.Flags().IntVar(&maxPositions, "max-positions", 10000, "cap on positions scored (0 = no cap)")
	compareCmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluation workers (0 = GOMAXPROCS)")
	compareCmd.Flags().StringVar(&markdownPath, "markdown", "", "also write a Markdown report to this file")
	compareCmd.MarkFlagRequired("pgn")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	f, err := os.Open(pgnPath)
	if err != nil {
		return fmt.Errorf("opening PGN file: %w", err)
	}
	defer f.Close()

	fens, stats, err := pgn.ExtractWithStats(f, pgn.Options{
		SkipPlies:    skipPlies,
		SampleEvery:  sampleEvery,
		MaxPositions: maxPositions,
	})
	if err != nil {
		return fmt.Errorf("extracting positions: %w", err)
	}
	if len(fens) == 0 {
		return fmt.Errorf("no positions extracted from %s", pgnPath)
	}

	ctx := context.Background()
	scores := make([][]float64, 2)
	for i, spec := range args {
		eval, err := newEvaluator(spec)
		if err != nil {
			return err
		}
		scores[i], err = analysis.ScoreAll(ctx, eval, fens, workers)
		eval.Close()
		if err != nil {
			return fmt.Errorf("scoring with %s: %w", spec, err)
		}
	}

	comparison, err := analysis.Compare(args[0], scores[0], args[1], scores[1])
	if err != nil {
		return err
	}
	fmt.Println(comparison.Summary())

	if markdownPath != "" {
		out, err := os.Create(markdownPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer out.Close()

		report := reporting.NewMarkdownReport(out)
		report.WriteHeader(fmt.Sprintf("Ruleset comparison: %s vs %s", args[0], args[1]))
		report.WriteMethodology(stats, len(fens))
		report.WriteComparison(comparison)
		report.WriteFooter()
		fmt.Printf("Report written to %s\n", markdownPath)
	}
	return nil
}
