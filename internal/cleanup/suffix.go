// =============================================================================
// BigFix Export Cleanup - Domain Suffix Stripper
// =============================================================================
//
// BigFix reports some computers by fully qualified name ("server165.corp
// .example.com") and others by short name ("server168"), depending on how
// the agent registered. The spreadsheets downstream join on short names, so
// this step truncates the Computer Name value at the first period and
// discards the rest. Values without a period pass through unchanged, which
// also makes the operation idempotent.
//
// The transformation is line-based rather than going through the CSV codec:
// every byte outside the Computer Name field must survive untouched,
// including stray quote characters that a round-trip through a CSV writer
// would re-escape.
//
// =============================================================================

package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/config"
	"github.com/ginjaninja78/BigFix-Export-Cleanup/pkg/utils"
)

// StripDomainSuffixFile reads the tab-delimited file at src, truncates the
// Computer Name value of every data row at the first period, and writes the
// result to dst. The header row is copied verbatim. An empty source file
// produces an empty destination file.
func StripDomainSuffixFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	if len(data) == 0 {
		if err := os.WriteFile(dst, nil, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
		return nil
	}

	lines := strings.Split(string(data), "\n")

	// The Computer Name column is addressed by header name; exports that
	// predate the header convention put it first.
	nameIndex := 0
	header := strings.Split(strings.TrimRight(lines[0], "\r"), "\t")
	for i, h := range header {
		if h == config.ComputerNameColumn {
			nameIndex = i
			break
		}
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		fields := strings.Split(lines[i], "\t")
		if nameIndex < len(fields) {
			fields[nameIndex] = truncateAtPeriod(fields[nameIndex])
			lines[i] = strings.Join(fields, "\t")
		}
	}

	out := strings.Join(lines, "\n")
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// truncateAtPeriod cuts the value at the first period. "server165.corp.com"
// becomes "server165"; "server168" is returned as is.
func truncateAtPeriod(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// StripDomainSuffixDir processes every .txt file in rawDir into
// processedDir under the same filename, creating processedDir if needed.
func StripDomainSuffixDir(rawDir, processedDir string, progress ProgressFunc) (BatchResult, error) {
	files, err := utils.DiscoverFiles(rawDir, ".txt")
	if err != nil {
		return BatchResult{}, err
	}

	if err := os.MkdirAll(processedDir, 0755); err != nil {
		return BatchResult{}, fmt.Errorf("failed to create directory %s: %w", processedDir, err)
	}

	result := BatchResult{Total: len(files)}
	for _, src := range files {
		name := filepath.Base(src)
		err := StripDomainSuffixFile(src, filepath.Join(processedDir, name))
		progress.report(name, err)
		if err != nil {
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
