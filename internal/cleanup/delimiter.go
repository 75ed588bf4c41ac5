// =============================================================================
// BigFix Export Cleanup - Comma-to-Tab Converter
// =============================================================================
//
// Several of the ILMT report schedules can only produce comma-delimited
// output, while everything downstream expects tabs. This step replaces every
// comma with a tab, whole file, in place. It is deliberately not
// CSV-quoting-aware: a comma inside a quoted field is replaced too.
//
// That makes quoted content a hazard, so the conversion refuses any file
// still containing double quotes unless forced. Run 'cleanup strip-quotes'
// on such files first.
//
// =============================================================================

package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/pkg/utils"
)

// ErrQuotedContent is returned when a file still contains double-quote
// characters and force was not given.
var ErrQuotedContent = errors.New("file contains double quotes; run strip-quotes first or use --force")

// CommasToTabsFile replaces every comma in the file with a tab, in place.
// When force is false, a file containing any double-quote character is
// rejected with ErrQuotedContent, since the blind replacement would split
// quoted fields apart.
func CommasToTabsFile(path string, force bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	if !force && strings.ContainsRune(content, '"') {
		return fmt.Errorf("%s: %w", path, ErrQuotedContent)
	}

	converted := strings.ReplaceAll(content, ",", "\t")
	if err := os.WriteFile(path, []byte(converted), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CommasToTabsDir converts every .txt file in dir, in place.
func CommasToTabsDir(dir string, force bool, progress ProgressFunc) (BatchResult, error) {
	files, err := utils.DiscoverFiles(dir, ".txt")
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(files)}
	for _, path := range files {
		name := filepath.Base(path)
		err := CommasToTabsFile(path, force)
		progress.report(name, err)
		if err != nil {
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
