package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/ruleval"
)

var (
	// Global flags.
	rulesetSpec string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "ruleval",
	Short: "Score chess positions with configurable evaluation rules",
	Long: `Ruleval scores chess positions with rule-based evaluators built from
JSON rule documents or named historical presets.

Examples:
  # Score the starting position with Shannon's 1950 evaluation
  ruleval score "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Validate a custom ruleset document
  ruleval validate my-rules.json

  # Compare two rulesets over a PGN collection
  ruleval compare shannon1950 fruit2005 --pgn games.pgn`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesetSpec, "ruleset", "r", "shannon1950", "preset name or path to a ruleset JSON file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// rulesetOption resolves a ruleset spec to an evaluator option. A
// spec naming an existing file loads the document; anything else is
// treated as a preset name.
func rulesetOption(spec string) (ruleval.Option, error) {
	if _, err := os.Stat(spec); err == nil {
		data, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("reading ruleset file: %w", err)
		}
		opt, err := ruleval.WithDocument(data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", spec, err)
		}
		return opt, nil
	}

	opt, err := ruleval.WithPreset(spec)
	if err != nil {
		return nil, fmt.Errorf("unknown ruleset %q (not a file or preset name)", spec)
	}
	return opt, nil
}

// newEvaluator builds an evaluator for the given ruleset spec with the
// CLI logger attached.
func newEvaluator(spec string, extra ...ruleval.Option) (*ruleval.Evaluator, error) {
	rulesOpt, err := rulesetOption(spec)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	opts := append([]ruleval.Option{rulesOpt, ruleval.WithLogger(logger)}, extra...)
	eval, err := ruleval.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating evaluator: %w", err)
	}
	return eval, nil
}
