// =============================================================================
// BigFix Export Cleanup - Main Entry Point
// =============================================================================
//
// This is the main entry point for the BigFix Export Cleanup CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   cleanup process       - Run the raw-to-processed pipeline over the export folder
//   cleanup tag           - Apply the status-tag chain to the all-computers file
//   cleanup strip-quotes  - Remove double quotes from one export file
//   cleanup dedupe        - Report duplicate computer names in the all-computers file
//   cleanup version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/BigFix-Export-Cleanup/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
