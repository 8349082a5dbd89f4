// Package main provides the ruleval CLI tool for scoring chess
// positions and managing evaluation rulesets.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
