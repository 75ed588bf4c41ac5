// =============================================================================
// BigFix Export Cleanup - XLSX Support
// =============================================================================
//
// ILMT can export either delimited text or XLSX workbooks depending on how
// the report was scheduled. This file maps the first sheet of a workbook
// onto the same Table model the delimited readers use, and writes Tables
// back out as workbooks for the duplicate report.
//
// =============================================================================

package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of the workbook at path into a Table.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{SourceFile: path}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheets[0], path, err)
	}

	table := &Table{SourceFile: path}
	if len(rows) == 0 {
		return table, nil
	}
	table.Headers = rows[0]
	table.Rows = rows[1:]
	return table, nil
}

// WriteXLSX writes the table to a single-sheet workbook at path.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		// SetSheetRow wants a slice of interface values.
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheet, cell, &cells)
	}

	if err := writeRow(1, t.Headers); err != nil {
		return fmt.Errorf("failed to build workbook for %s: %w", path, err)
	}
	for i, row := range t.Rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("failed to build workbook for %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
