// =============================================================================
// BigFix Export Cleanup - Status Tagger
// =============================================================================
//
// This module maintains the status columns in the all-computers file. Each
// tag rule cross-references one export file (computers that are not
// reporting, not in the CMDB, missing a scan, and so on) and writes a
// present/absent label into a dedicated column of 020_all.csv.
//
// COLUMN PLACEMENT:
//   Every status column sits immediately after its anchor column. The first
//   rule anchors on Computer Name; each later rule anchors on the column
//   maintained by the previous rule, falling back through the earlier
//   columns when a run skipped some rules. Re-running a rule repositions an
//   existing column instead of duplicating it, carrying its values.
//
// MATCHING:
//   Exact string equality on the trimmed Computer Name. The domain-suffix
//   stripper must already have run on both sides, otherwise a fully
//   qualified name will never match its short form.
//
// =============================================================================

package tagger

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/config"
	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/tabular"
)

// Result summarizes one applied rule.
type Result struct {
	// Column is the status column the rule maintains.
	Column string

	// ReferenceCount is the number of distinct names in the reference file.
	ReferenceCount int

	// TaggedRows is the number of data rows that received a label.
	TaggedRows int

	// SkippedEmpty is true when the all-computers file was empty and
	// nothing was written.
	SkippedEmpty bool
}

// =============================================================================
// REFERENCE SETS
// =============================================================================

// LoadNameSet reads the reference file and returns the set of computer
// names from its first column. The header row is skipped, values are
// trimmed, and blanks are ignored.
func LoadNameSet(path string) (map[string]struct{}, error) {
	table, err := tabular.ReadFile(path, tabular.Tab)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	for _, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name != "" {
			names[name] = struct{}{}
		}
	}
	return names, nil
}

// =============================================================================
// RULE APPLICATION
// =============================================================================

// ApplyRule updates the table in memory according to the rule: the status
// column is placed after the first anchor found in the header, and every
// data row is labeled by membership of its Computer Name in names.
func ApplyRule(table *tabular.Table, rule config.TagRule, names map[string]struct{}) (Result, error) {
	result := Result{Column: rule.Column, ReferenceCount: len(names)}

	if table.IsEmpty() {
		result.SkippedEmpty = true
		return result, nil
	}

	anchorIndex := -1
	for _, anchor := range rule.Anchors {
		if i := table.ColumnIndex(anchor); i >= 0 {
			anchorIndex = i
			break
		}
	}
	if anchorIndex < 0 {
		return result, fmt.Errorf(
			"none of the anchor columns %q found in %s",
			rule.Anchors, table.SourceFile)
	}

	statusIndex := table.EnsureColumnAt(rule.Column, anchorIndex+1)

	nameIndex := table.ColumnIndex(config.ComputerNameColumn)
	if nameIndex < 0 {
		// Old exports without the standard header keep the name first.
		nameIndex = 0
	}

	for i, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		name := ""
		if nameIndex < len(row) {
			name = strings.TrimSpace(row[nameIndex])
		}

		label := rule.AbsentLabel
		if _, ok := names[name]; ok {
			label = rule.PresentLabel
		}

		for len(row) <= statusIndex {
			row = append(row, "")
		}
		row[statusIndex] = label
		table.Rows[i] = row
		result.TaggedRows++
	}
	return result, nil
}

// ApplyRuleFile applies one rule to the all-computers file on disk. The
// rule's reference file is resolved against processedDir unless absolute.
// An empty all-file is left untouched.
func ApplyRuleFile(allPath string, rule config.TagRule, processedDir string) (Result, error) {
	refPath := rule.ReferenceFile
	if !filepath.IsAbs(refPath) {
		refPath = filepath.Join(processedDir, refPath)
	}

	names, err := LoadNameSet(refPath)
	if err != nil {
		return Result{Column: rule.Column}, err
	}

	table, err := tabular.ReadFile(allPath, tabular.Tab)
	if err != nil {
		return Result{Column: rule.Column}, err
	}

	result, err := ApplyRule(table, rule, names)
	if err != nil {
		return result, err
	}
	if result.SkippedEmpty {
		return result, nil
	}

	if err := table.WriteFile(allPath, tabular.Tab); err != nil {
		return result, err
	}
	return result, nil
}
