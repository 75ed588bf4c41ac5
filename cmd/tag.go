// =============================================================================
// BigFix Export Cleanup - Tag Command
// =============================================================================
//
// This file defines the 'tag' command, which applies the status-tag chain
// to the all-computers file. Each rule cross-references one export file and
// maintains one status column (reporting status, CMDB status, and the
// scan/VM-manager flags), inserted immediately after its anchor column.
//
// The rules run in their configured order with the same inter-step delay as
// the pipeline; a failing rule aborts the remainder of the chain.
//
// FLAGS:
//   --only : Apply only the rule maintaining the named column
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/tagger"
	"github.com/spf13/cobra"
)

// onlyColumn restricts the run to the rule maintaining one column.
var onlyColumn string

// tagCmd represents the 'tag' command.
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Apply the status-tag chain to the all-computers file",
	Long: `The tag command cross-references the all-computers file against the
status export files and maintains one column per rule, for example:

  Not reporting to BigFix   from 021_notrep.csv   (Not Reporting / Reporting)
  CMDB Status               from 023_CMDB_active.csv (In CMDB / Not in CMDB)
  Delayed Data Upload       from 001_Delayed Data Upload.csv (YES / NO)
  ...

Each status column is inserted immediately after its anchor column, starting
right after Computer Name. Matching is exact string equality on the name, so
run 'cleanup process' first to strip domain suffixes from both sides.

The chain can be overridden with tag_rules in the configuration file.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runTag()
	},
}

// init registers the tag command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringVar(
		&onlyColumn,
		"only",
		"",
		"Apply only the rule maintaining the named column",
	)
}

// runTag applies the configured rules in order, fail-fast.
func runTag() error {
	rules := cfg.TagRules
	if onlyColumn != "" {
		selected := rules[:0:0]
		for _, r := range rules {
			if r.Column == onlyColumn {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("no tag rule maintains column %q", onlyColumn)
		}
		rules = selected
	}

	allPath := filepath.Join(cfg.ProcessedDir, cfg.AllFile)

	fmt.Println("=== BigFix Export Cleanup ===")
	fmt.Printf("Tagging %q with %d rule(s)\n", allPath, len(rules))
	fmt.Println("------------------------------------------------------------")

	for i, rule := range rules {
		result, err := tagger.ApplyRuleFile(allPath, rule, cfg.ProcessedDir)
		if err != nil {
			return fmt.Errorf("rule %q failed: %w", rule.Column, err)
		}

		if result.SkippedEmpty {
			fmt.Printf("Warning: %s is empty, nothing to update\n", cfg.AllFile)
			break
		}
		fmt.Printf("Updated %q using %d reference name(s), %d row(s) tagged\n",
			result.Column, result.ReferenceCount, result.TaggedRows)

		if i < len(rules)-1 {
			time.Sleep(cfg.StepDelay())
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Println("Tagging complete.")
	return nil
}
