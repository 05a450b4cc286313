// Package sink writes pipeline results out: flat CSV files, an Excel
// workbook, and the relational warehouse load.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"posetl/pkg/table"
)

// WriteCSV writes t to path as UTF-8 CSV with a header row, creating parent
// directories as needed. nil cells render as empty fields.
func WriteCSV(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sink: mkdir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := t.Columns()
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("sink: write header to %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, r := range t.Rows() {
		for i, c := range columns {
			record[i] = table.AsString(r[c])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("sink: write row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("sink: flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteCSVDir writes each named table to <dir>/<name>.csv.
func WriteCSVDir(dir string, tables map[string]*table.Table, order []string) error {
	for _, name := range order {
		t, ok := tables[name]
		if !ok {
			continue
		}
		if err := WriteCSV(filepath.Join(dir, name+".csv"), t); err != nil {
			return err
		}
	}
	return nil
}
