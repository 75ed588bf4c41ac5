// =============================================================================
// BigFix Export Cleanup - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main raw-to-processed
// pipeline. It runs the three cleanup steps in a fixed order:
//
//   1. strip-suffix : truncate Computer Name domain suffixes
//                     (raw dir -> processed dir)
//   2. commas-to-tabs : replace commas with tabs, in place (processed dir)
//   3. rename : rename .txt to .csv (processed dir)
//
// Between steps the command pauses briefly so that one step's writes are
// visible on the file share before the next step scans the folder. Any
// failing step aborts the remainder of the sequence.
//
// FLAGS:
//   --dry-run      : List the work without writing anything
//   --step         : Run only the named step (strip-suffix | commas-to-tabs | rename)
//   --force        : Let commas-to-tabs proceed on files containing quotes
//   --error-report : Write an error report file for any failures
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/cleanup"
	"github.com/ginjaninja78/BigFix-Export-Cleanup/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun lists the work without writing output files.
var dryRun bool

// stepName restricts the run to a single named step.
var stepName string

// forceConversion lets commas-to-tabs proceed on quoted content.
var forceConversion bool

// writeErrorReport writes failures to a report file in the processed dir.
var writeErrorReport bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the raw-to-processed cleanup pipeline",
	Long: `The process command runs the cleanup pipeline over the export folders:
domain suffixes are stripped from Computer Name values (raw folder into the
processed folder), commas are replaced with tabs in place, and the cleaned
.txt files are renamed to .csv.

The steps run in a fixed order with a short pause between them so that one
step's writes are visible before the next step scans the folder. If any step
fails, the remaining steps are skipped and the command exits non-zero.

The comma-to-tab conversion is not CSV-quoting-aware: it refuses files that
still contain double quotes. Run 'cleanup strip-quotes' on those files first,
or pass --force to convert them anyway.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"List the work without writing output files",
	)
	processCmd.Flags().StringVar(
		&stepName,
		"step",
		"",
		"Run only the named step (strip-suffix | commas-to-tabs | rename)",
	)
	processCmd.Flags().BoolVar(
		&forceConversion,
		"force",
		false,
		"Convert commas to tabs even in files containing double quotes",
	)
	processCmd.Flags().BoolVar(
		&writeErrorReport,
		"error-report",
		false,
		"Write an error report file for any failures",
	)
}

// =============================================================================
// PIPELINE STEPS
// =============================================================================

// pipelineStep is one step of the fixed sequence.
type pipelineStep struct {
	name string
	desc string
	run  func(progress cleanup.ProgressFunc) (cleanup.BatchResult, error)
}

// pipelineSteps builds the step sequence from the loaded configuration.
func pipelineSteps() []pipelineStep {
	return []pipelineStep{
		{
			name: "strip-suffix",
			desc: fmt.Sprintf("Stripping domain suffixes: %q -> %q", cfg.RawDir, cfg.ProcessedDir),
			run: func(progress cleanup.ProgressFunc) (cleanup.BatchResult, error) {
				return cleanup.StripDomainSuffixDir(cfg.RawDir, cfg.ProcessedDir, progress)
			},
		},
		{
			name: "commas-to-tabs",
			desc: fmt.Sprintf("Replacing commas with tabs in %q", cfg.ProcessedDir),
			run: func(progress cleanup.ProgressFunc) (cleanup.BatchResult, error) {
				return cleanup.CommasToTabsDir(cfg.ProcessedDir, forceConversion, progress)
			},
		},
		{
			name: "rename",
			desc: fmt.Sprintf("Renaming .txt files to .csv in %q", cfg.ProcessedDir),
			run: func(progress cleanup.ProgressFunc) (cleanup.BatchResult, error) {
				return cleanup.RenameTxtToCSVDir(cfg.ProcessedDir, progress)
			},
		},
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess executes the pipeline steps in order, pausing between them and
// aborting on the first failure.
func runProcess() error {
	startTime := time.Now()
	steps := pipelineSteps()

	// --step restricts the run to one named step.
	if stepName != "" {
		selected := steps[:0:0]
		for _, s := range steps {
			if s.name == stepName {
				selected = append(selected, s)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("unknown step %q (expected strip-suffix, commas-to-tabs, or rename)", stepName)
		}
		steps = selected
	}

	fmt.Println("=== BigFix Export Cleanup ===")

	if dryRun {
		return listWork(steps)
	}

	fm := utils.NewFileManager(cfg.RawDir, cfg.ProcessedDir)
	if err := fm.EnsureProcessedDir(); err != nil {
		return err
	}

	var runErrors []utils.RunError

	for i, step := range steps {
		fmt.Println(step.desc)
		fmt.Println("------------------------------------------------------------")

		result, err := step.run(func(name string, fileErr error) {
			if fileErr != nil {
				fmt.Printf("  %s... FAILED: %v\n", name, fileErr)
				runErrors = append(runErrors, utils.RunError{
					Timestamp: time.Now(),
					Step:      step.name,
					FileName:  name,
					Message:   fileErr.Error(),
				})
				return
			}
			if verbose {
				fmt.Printf("  %s... OK\n", name)
			}
		})
		if err != nil {
			// The step could not run at all (e.g. missing directory).
			runErrors = append(runErrors, utils.RunError{
				Timestamp: time.Now(),
				Step:      step.name,
				Message:   err.Error(),
			})
			reportErrors(runErrors)
			return fmt.Errorf("step %s failed: %w", step.name, err)
		}

		fmt.Printf("Step %s complete: %d/%d files processed\n", step.name, result.Succeeded, result.Total)
		if !result.AllOK() {
			reportErrors(runErrors)
			return fmt.Errorf("step %s failed for %d file(s): %v", step.name, len(result.Failed), result.Failed)
		}

		// Let the share settle before the next step scans the folder.
		if i < len(steps)-1 {
			time.Sleep(cfg.StepDelay())
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("All steps completed successfully in %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// listWork prints what the pipeline would do, without writing anything.
func listWork(steps []pipelineStep) error {
	for _, step := range steps {
		fmt.Printf("[dry-run] %s\n", step.desc)

		dir := cfg.ProcessedDir
		if step.name == "strip-suffix" {
			dir = cfg.RawDir
		}
		files, err := utils.DiscoverFiles(dir, ".txt")
		if err != nil {
			return fmt.Errorf("step %s failed: %w", step.name, err)
		}
		for _, f := range files {
			fmt.Printf("  would process %s\n", filepath.Base(f))
		}
	}
	return nil
}

// reportErrors writes the error report when --error-report was given.
func reportErrors(runErrors []utils.RunError) {
	if !writeErrorReport || len(runErrors) == 0 {
		return
	}
	path, err := utils.WriteErrorReport(runErrors, cfg.ProcessedDir)
	if err != nil {
		fmt.Printf("Warning: could not write error report: %v\n", err)
		return
	}
	fmt.Printf("Error report written to %s\n", path)
}
