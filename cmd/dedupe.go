// =============================================================================
// BigFix Export Cleanup - Dedupe Command
// =============================================================================
//
// This file defines the 'dedupe' command, which reports duplicate Computer
// Name values in the all-computers file. By default it only prints each
// duplicated name with its occurrence count; with --output it also exports
// the full duplicate rows (tab-delimited text, or an XLSX workbook when the
// path ends in .xlsx).
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/dedupe"
	"github.com/spf13/cobra"
)

// dedupeFile overrides the file to inspect (default: the all-computers file).
var dedupeFile string

// dedupeOutput is the optional export path for the full duplicate rows.
var dedupeOutput string

// dedupeCmd represents the 'dedupe' command.
var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Report duplicate computer names in the all-computers file",
	Long: `The dedupe command groups the rows of the all-computers file by
Computer Name and reports every name that occurs more than once, with its
occurrence count. Duplicates usually mean a computer re-registered with
BigFix and is being double-counted downstream.

With --output the full duplicate rows are exported for manual
reconciliation: tab-delimited text by default, or an XLSX workbook when the
output path ends in .xlsx.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runDedupe()
	},
}

// init registers the dedupe command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().StringVar(
		&dedupeFile,
		"file",
		"",
		"File to inspect (default: the all-computers file in the processed folder)",
	)
	dedupeCmd.Flags().StringVar(
		&dedupeOutput,
		"output",
		"",
		"Export the full duplicate rows to this path (.xlsx for a workbook)",
	)
}

// runDedupe reports the duplicate groups and optionally exports their rows.
func runDedupe() error {
	path := dedupeFile
	if path == "" {
		path = filepath.Join(cfg.ProcessedDir, cfg.AllFile)
	}

	table, groups, err := dedupe.Report(path)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Printf("No duplicate computer names in %s\n", path)
		return nil
	}

	fmt.Printf("Duplicate computer names in %s:\n", path)
	for _, g := range groups {
		fmt.Printf("  %s: %d\n", g.Name, g.Count)
	}
	fmt.Printf("%d duplicated name(s)\n", len(groups))

	if dedupeOutput != "" {
		if err := dedupe.Export(table, groups, dedupeOutput); err != nil {
			return fmt.Errorf("failed to export duplicates: %w", err)
		}
		fmt.Printf("Duplicate rows exported to %s\n", dedupeOutput)
	}
	return nil
}
