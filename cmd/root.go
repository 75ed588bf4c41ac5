// =============================================================================
// BigFix Export Cleanup - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'tag') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cleanup)
//   ├── processCmd (cleanup process)
//   ├── tagCmd (cleanup tag)
//   ├── stripQuotesCmd (cleanup strip-quotes)
//   ├── dedupeCmd (cleanup dedupe)
//   └── versionCmd (cleanup version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration before any subcommand runs
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// cfg is the loaded application configuration, populated before any
// subcommand's RunE executes.
var cfg *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "cleanup",

	// Short is a short description shown in the 'help' output.
	Short: "BigFix Export Cleanup - Reformat BigFix/ILMT export files for spreadsheets",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `BigFix Export Cleanup is a CLI tool that reformats tabular export files
from the BigFix and ILMT asset-management systems for downstream spreadsheet
consumption.

Key Features:
  - Strips domain suffixes from Computer Name values
  - Converts comma-delimited exports to tab-delimited
  - Renames processed .txt files to .csv
  - Tags the all-computers file with reporting / CMDB / scan status columns
  - Strips stray double quotes and finds duplicate computer names

Example Usage:
  cleanup process                     # Run the full raw-to-processed pipeline
  cleanup process --config ./my.yaml  # Use a custom configuration file
  cleanup tag                         # Apply the status-tag chain
  cleanup dedupe                      # Report duplicate computer names`,

	// Run is executed when the root command is called without a subcommand.
	// In that case we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	// PersistentPreRunE loads the configuration for every subcommand.
	// A missing config file is not an error: the built-in defaults match
	// the folder layout the export scripts have always assumed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose output.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
