package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/ruleval"
)

var validateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Validate a ruleset document",
	Long: `Validate a ruleset JSON document: parse it, build every rule, and
report the problems a save through the rule editor would reject.

With --normalize, print the document back in canonical form with
generated rule IDs filled in.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var normalize bool

func init() {
	validateCmd.Flags().BoolVar(&normalize, "normalize", false, "print the normalized document")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	opt, err := ruleval.WithDocument(data)
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	eval, err := ruleval.New(opt)
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	defer eval.Close()

	fmt.Printf("OK: %s (%d active rules)\n", eval.RulesetName(), eval.ActiveRules())

	if normalize {
		out, err := eval.Document()
		if err != nil {
			return fmt.Errorf("serializing document: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}
