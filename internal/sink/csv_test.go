package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"posetl/pkg/table"
)

func revenueTable() *table.Table {
	t := table.New("order_date", "total_revenue")
	t.Append(table.Row{"order_date": "2023-01-02", "total_revenue": decimal.RequireFromString("130.00")})
	t.Append(table.Row{"order_date": "2023-01-03", "total_revenue": decimal.RequireFromString("250.00")})
	return t
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "daily_revenue.csv")
	if err := WriteCSV(path, revenueTable()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), b)
	}
	if lines[0] != "order_date,total_revenue" {
		t.Errorf("header = %q", lines[0])
	}
	// decimal.String trims trailing zeros, so 130.00 renders as 130.
	if lines[1] != "2023-01-02,130" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestWriteCSVRendersNilAndTime(t *testing.T) {
	tbl := table.New("order_id", "order_timestamp", "customer_id")
	tbl.Append(table.Row{
		"order_id":        int64(1),
		"order_timestamp": time.Date(2023, 1, 2, 12, 30, 0, 0, time.UTC),
		"customer_id":     nil,
	})

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := WriteCSV(path, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	b, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[1] != "1,2023-01-02 12:30:00," {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteCSVDirSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	tables := map[string]*table.Table{"daily_revenue": revenueTable()}

	err := WriteCSVDir(dir, tables, []string{"daily_revenue", "weekly_revenue"})
	if err != nil {
		t.Fatalf("WriteCSVDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "daily_revenue.csv")); err != nil {
		t.Fatalf("daily_revenue.csv missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "weekly_revenue.csv")); !os.IsNotExist(err) {
		t.Fatal("weekly_revenue.csv written for a table not in the map")
	}
}
