// =============================================================================
// BigFix Export Cleanup - Tabular File Module
// =============================================================================
//
// This module reads and writes the delimited export files produced by BigFix
// and ILMT. Every export is a header row of column names followed by one row
// per monitored computer; columns are addressed by header name, never by
// position, because the upstream tools reorder columns between releases.
//
// FEATURES:
//   - Tab- and comma-delimited text, plus XLSX workbooks (see xlsx.go)
//   - Ragged rows tolerated on read, padded on column insertion
//   - Column insertion and repositioning by header name
//
// =============================================================================

package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Delimiters used by the export files.
const (
	Tab   = '\t'
	Comma = ','
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table represents one parsed export file.
type Table struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Rows contains the data rows. Rows may be shorter than Headers when
	// the upstream export truncated trailing empty fields.
	Rows [][]string

	// SourceFile is the path the table was read from, for error reporting.
	SourceFile string
}

// IsEmpty reports whether the file had no content at all (not even headers).
func (t *Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Records converts the rows to maps keyed by header name. Missing trailing
// fields come back as empty strings.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		record := make(map[string]string, len(t.Headers))
		for j, h := range t.Headers {
			if j < len(row) {
				record[h] = row[j]
			} else {
				record[h] = ""
			}
		}
		records[i] = record
	}
	return records
}

// =============================================================================
// COLUMN OPERATIONS
// =============================================================================

// EnsureColumnAt guarantees that the named column exists at exactly the given
// index, inserting it (empty-valued) or moving the existing column there,
// carrying its values. Short rows are padded first so every row has a value
// slot. Returns the final index, which is one less than requested when an
// existing column moved rightward (its removal shifts the target left).
func (t *Table) EnsureColumnAt(name string, index int) int {
	current := t.ColumnIndex(name)

	switch {
	case current == index:
		// Already in place.
	case current == -1:
		t.Headers = insertAt(t.Headers, index, name)
		for i, row := range t.Rows {
			row = padTo(row, index)
			t.Rows[i] = insertAt(row, index, "")
		}
	default:
		t.Headers = removeAt(t.Headers, current)
		if current < index {
			index--
		}
		t.Headers = insertAt(t.Headers, index, name)
		for i, row := range t.Rows {
			value := ""
			if current < len(row) {
				value = row[current]
				row = removeAt(row, current)
			}
			row = padTo(row, index)
			t.Rows[i] = insertAt(row, index, value)
		}
	}
	return index
}

// insertAt inserts v at index i, appending when i is past the end.
func insertAt(s []string, i int, v string) []string {
	if i >= len(s) {
		return append(s, v)
	}
	out := append(s[:i:i], v)
	return append(out, s[i:]...)
}

func removeAt(s []string, i int) []string {
	if i >= len(s) {
		return s
	}
	return append(s[:i:i], s[i+1:]...)
}

func padTo(s []string, n int) []string {
	for len(s) < n {
		s = append(s, "")
	}
	return s
}

// =============================================================================
// READING
// =============================================================================

// ReadFile parses the file at path with the given delimiter. Files with an
// .xlsx extension are read as workbooks and the delimiter is ignored. An
// empty file yields an empty Table, not an error.
func ReadFile(path string, delimiter rune) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = delimiter
	// Exports truncate trailing empty fields, so rows are ragged.
	reader.FieldsPerRecord = -1
	// Raw exports contain stray quote characters; do not choke on them.
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	table := &Table{SourceFile: path}
	if len(allRows) == 0 {
		return table, nil
	}
	table.Headers = allRows[0]
	table.Rows = allRows[1:]
	return table, nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteFile writes the table to path with the given delimiter, LF line
// endings, header row first.
func (t *Table) WriteFile(path string, delimiter rune) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	if t.IsEmpty() {
		// Preserve the empty file rather than writing a blank header row.
		return nil
	}

	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
