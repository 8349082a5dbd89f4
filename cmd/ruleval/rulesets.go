package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/ruleval"
)

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "Manage rulesets stored on disk",
	Long: `Manage the ruleset library under a data directory. Documents are
stored zstd-compressed and can be loaded by name.

Examples:
  ruleval rulesets save club-rules --ruleset my-rules.json --data-dir ./data
  ruleval rulesets list --data-dir ./data
  ruleval rulesets show club-rules --data-dir ./data`,
}

var dataDir string

var rulesetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rulesets",
	Args:  cobra.NoArgs,
	RunE:  runRulesetsList,
}

var rulesetsSaveCmd = &cobra.Command{
	Use:   "save [NAME]",
	Short: "Save the active ruleset under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesetsSave,
}

var rulesetsShowCmd = &cobra.Command{
	Use:   "show [NAME]",
	Short: "Print a stored ruleset document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesetsShow,
}

var rulesetsDeleteCmd = &cobra.Command{
	Use:   "delete [NAME]",
	Short: "Delete a stored ruleset",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesetsDelete,
}

func init() {
	rulesetsCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./data", "directory holding the ruleset library")
	rulesetsCmd.AddCommand(rulesetsListCmd, rulesetsSaveCmd, rulesetsShowCmd, rulesetsDeleteCmd)
	rootCmd.AddCommand(rulesetsCmd)
}

// storedEvaluator builds an evaluator wired to the data directory.
func storedEvaluator() (*ruleval.Evaluator, error) {
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("data directory %q does not exist", dataDir)
	}
	storeOpt, err := ruleval.WithDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	return newEvaluator(rulesetSpec, storeOpt)
}

func runRulesetsList(cmd *cobra.Command, args []string) error {
	eval, err := storedEvaluator()
	if err != nil {
		return err
	}
	defer eval.Close()

	names, err := eval.ListRulesets(context.Background())
	if err != nil {
		return fmt.Errorf("listing rulesets: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("(no rulesets stored)")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runRulesetsSave(cmd *cobra.Command, args []string) error {
	eval, err := storedEvaluator()
	if err != nil {
		return err
	}
	defer eval.Close()

	if err := eval.SaveRuleset(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Saved %s (%d rules)\n", args[0], eval.ActiveRules())
	return nil
}

func runRulesetsShow(cmd *cobra.Command, args []string) error {
	eval, err := storedEvaluator()
	if err != nil {
		return err
	}
	defer eval.Close()

	if err := eval.LoadRuleset(context.Background(), args[0]); err != nil {
		return err
	}
	data, err := eval.Document()
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runRulesetsDelete(cmd *cobra.Command, args []string) error {
	eval, err := storedEvaluator()
	if err != nil {
		return err
	}
	defer eval.Close()

	if err := eval.Store().Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting ruleset: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
