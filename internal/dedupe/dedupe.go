// =============================================================================
// BigFix Export Cleanup - Duplicate Name Finder
// =============================================================================
//
// A computer that re-registered with BigFix shows up twice in the
// all-computers export, which double-counts it in every downstream pivot.
// This module groups the rows by Computer Name, reports each name that
// occurs more than once with its count, and can export the full duplicate
// rows for manual reconciliation.
//
// =============================================================================

package dedupe

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/config"
	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/tabular"
)

// Group is one duplicated Computer Name and its occurrence count.
type Group struct {
	Name  string
	Count int
}

// =============================================================================
// DUPLICATE DETECTION
// =============================================================================

// FindDuplicates groups the table's rows by trimmed Computer Name and
// returns the names occurring more than once, sorted by name. Matching is
// case-sensitive, the same rule the tagger uses.
func FindDuplicates(table *tabular.Table) []Group {
	nameIndex := table.ColumnIndex(config.ComputerNameColumn)
	if nameIndex < 0 {
		nameIndex = 0
	}

	counts := make(map[string]int)
	for _, row := range table.Rows {
		if nameIndex >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIndex])
		if name == "" {
			continue
		}
		counts[name]++
	}

	var groups []Group
	for name, count := range counts {
		if count > 1 {
			groups = append(groups, Group{Name: name, Count: count})
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

// Report reads the tab-delimited file at path and returns its duplicate
// groups together with the parsed table (for a later export).
func Report(path string) (*tabular.Table, []Group, error) {
	table, err := tabular.ReadFile(path, tabular.Tab)
	if err != nil {
		return nil, nil, err
	}
	return table, FindDuplicates(table), nil
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes the full rows of every duplicate group to outPath: header
// first, groups in name order, rows within a group in their original file
// order. The format follows the extension: .xlsx becomes a workbook,
// anything else is tab-delimited text.
func Export(table *tabular.Table, groups []Group, outPath string) error {
	if len(groups) == 0 {
		return fmt.Errorf("no duplicate rows to export")
	}

	nameIndex := table.ColumnIndex(config.ComputerNameColumn)
	if nameIndex < 0 {
		nameIndex = 0
	}

	out := &tabular.Table{Headers: table.Headers}
	for _, g := range groups {
		for _, row := range table.Rows {
			if nameIndex >= len(row) {
				continue
			}
			if strings.TrimSpace(row[nameIndex]) == g.Name {
				out.Rows = append(out.Rows, row)
			}
		}
	}

	if strings.EqualFold(filepath.Ext(outPath), ".xlsx") {
		return out.WriteXLSX(outPath)
	}
	return out.WriteFile(outPath, tabular.Tab)
}
