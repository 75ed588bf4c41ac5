// =============================================================================
// BigFix Export Cleanup - Strip-Quotes Command
// =============================================================================
//
// This file defines the 'strip-quotes' command, which removes every double
// quote character from one export file, in place. The CMDB export wraps
// every field in quotes; those must be removed before the comma-to-tab
// conversion, or quoted commas would be split apart as delimiters.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/cleanup"
	"github.com/spf13/cobra"
)

// stripQuotesCmd represents the 'strip-quotes' command.
var stripQuotesCmd = &cobra.Command{
	Use:   "strip-quotes [file]",
	Short: "Remove double quotes from an export file",
	Long: `The strip-quotes command removes every double-quote character from the
given file, in place. Commas and all other content are untouched:
a,"b,c",d becomes a,b,c,d.

Without an argument the configured CMDB export file is cleaned, since that
is the one export whose fields arrive quoted. Run this before
'cleanup process' so the comma-to-tab conversion cannot split quoted
fields.`,

	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CMDBFile
		if len(args) == 1 {
			path = args[0]
		}

		if err := cleanup.StripQuotesFile(path); err != nil {
			return err
		}
		fmt.Printf("Removed double quotes from %s\n", path)
		return nil
	},
}

// init registers the strip-quotes command with the root command.
func init() {
	rootCmd.AddCommand(stripQuotesCmd)
}
