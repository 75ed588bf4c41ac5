// =============================================================================
// BigFix Export Cleanup - Extension Renamer
// =============================================================================
//
// The last pipeline step renames the cleaned .txt files to .csv so that
// double-clicking them opens the spreadsheet application. The content is
// not touched; an existing .csv under the same base name is removed first
// so reruns always end with fresh content.
//
// =============================================================================

package cleanup

import (
	"path/filepath"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/pkg/utils"
)

// RenameTxtToCSVDir renames every .txt file in dir to the same base name
// with a .csv extension.
func RenameTxtToCSVDir(dir string, progress ProgressFunc) (BatchResult, error) {
	files, err := utils.DiscoverFiles(dir, ".txt")
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(files)}
	for _, path := range files {
		name := filepath.Base(path)
		_, err := utils.RenameExtension(path, ".csv")
		progress.report(name, err)
		if err != nil {
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
