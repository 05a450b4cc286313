package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"posetl/pkg/table"
)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// WriteWorkbook writes one sheet per named table into a single .xlsx file,
// in the given order. Sheet names longer than the Excel limit are truncated.
func WriteWorkbook(path string, tables map[string]*table.Table, order []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sink: mkdir for %s: %w", path, err)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	first := true
	for _, name := range order {
		t, ok := tables[name]
		if !ok {
			continue
		}

		sheet := sheetName(name)
		if first {
			// Rename the default sheet rather than leaving an empty "Sheet1".
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("sink: rename sheet %s: %w", sheet, err)
			}
			first = false
		} else {
			if _, err := wb.NewSheet(sheet); err != nil {
				return fmt.Errorf("sink: add sheet %s: %w", sheet, err)
			}
		}

		if err := writeSheet(wb, sheet, t); err != nil {
			return err
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("sink: save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(wb *excelize.File, sheet string, t *table.Table) error {
	columns := t.Columns()
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("sink: sheet %s header: %w", sheet, err)
	}

	for i, r := range t.Rows() {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = cellValue(r[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sink: sheet %s row %d: %w", sheet, i, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sink: sheet %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}

// cellValue maps table scalars onto types excelize stores natively. Decimals
// render as strings to avoid binary float drift in the workbook.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case int64, int, float64, bool, string:
		return v
	default:
		return table.AsString(v)
	}
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
