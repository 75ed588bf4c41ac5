// =============================================================================
// BigFix Export Cleanup - Quote Stripper
// =============================================================================
//
// The CMDB export wraps every field in double quotes. Those quotes would be
// misread as data by the spreadsheets, and any quoted comma would be split
// by the comma-to-tab conversion. This step removes every double-quote
// character from the file, in place, leaving commas and everything else
// untouched.
//
// =============================================================================

package cleanup

import (
	"fmt"
	"os"
	"strings"
)

// StripQuotesFile removes every double-quote character from the file at
// path, in place.
func StripQuotesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cleaned := strings.ReplaceAll(string(data), `"`, "")
	if err := os.WriteFile(path, []byte(cleaned), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
