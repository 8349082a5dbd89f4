package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/ruleval/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [NAME]",
	Short: "List the built-in historical rulesets",
	Long: `List the built-in historical rulesets, or print one as a JSON
document that can be edited and passed back via --ruleset.

Examples:
  # List available presets
  ruleval presets

  # Dump Shannon's 1950 evaluation as an editable document
  ruleval presets shannon1950 > shannon.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range presets.Names() {
			doc, err := presets.Load(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-18s %d rules\n", name, len(doc.Rules))
		}
		return nil
	}

	doc, err := presets.Load(args[0])
	if err != nil {
		return err
	}
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("serializing preset: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
