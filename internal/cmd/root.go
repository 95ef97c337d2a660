// Package cmd implements the adfix command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verbose is a global flag for verbose output
var verbose bool

// configPath is the --config flag shared by all commands
var configPath string

var rootCmd = &cobra.Command{
	Use:   "adfix",
	Short: "adfix - AsciiDoc DITA compatibility fixer",
	Long: `adfix resolves DITA compatibility violations in AsciiDoc files.

It consumes violation reports from the vale linter (AsciiDocDITA style),
routes each violation to its fix rule, and applies safe edits in place:
deterministic rewrites, reviewed placeholders, or explanatory comment flags.
Modified files get a backup copy and are replaced atomically.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .adfix.yaml)")

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
}
