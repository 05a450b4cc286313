package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"posetl/pkg/table"
)

// fakeRepo records every CopyFrom call and can be primed to fail.
type fakeRepo struct {
	batches [][][]any
	columns [][]string
	failOn  int // 1-based batch index to fail on; 0 means never
}

func (f *fakeRepo) CopyFrom(_ context.Context, _ string, columns []string, rows [][]any) (int64, error) {
	f.columns = append(f.columns, columns)
	copied := make([][]any, len(rows))
	for i, r := range rows {
		copied[i] = append([]any(nil), r...)
	}
	f.batches = append(f.batches, copied)
	if f.failOn > 0 && len(f.batches) == f.failOn {
		return 0, errors.New("disk full")
	}
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(context.Context, string) error          { return nil }
func (f *fakeRepo) Count(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeRepo) Close()                                       {}

func ordersTable(n int) *table.Table {
	t := table.New("order_id", "order_status")
	for i := 1; i <= n; i++ {
		t.Append(table.Row{"order_id": int64(i), "order_status": "completed"})
	}
	return t
}

func TestLoadTableBatches(t *testing.T) {
	repo := &fakeRepo{}
	total, err := LoadTable(context.Background(), repo, "orders", ordersTable(7), 3)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if got := len(repo.batches); got != 3 {
		t.Fatalf("batches = %d, want 3", got)
	}
	for i, want := range []int{3, 3, 1} {
		if got := len(repo.batches[i]); got != want {
			t.Errorf("batch %d size = %d, want %d", i, got, want)
		}
	}
}

func TestLoadTableAlignsRowsToColumns(t *testing.T) {
	repo := &fakeRepo{}
	tbl := table.New("order_id", "order_status")
	tbl.Append(table.Row{"order_status": "completed", "order_id": int64(42)})

	if _, err := LoadTable(context.Background(), repo, "orders", tbl, 10); err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	row := repo.batches[0][0]
	if row[0] != int64(42) || row[1] != "completed" {
		t.Fatalf("row = %v, want [42 completed]", row)
	}
}

func TestLoadTablePropagatesCopyError(t *testing.T) {
	repo := &fakeRepo{failOn: 2}
	total, err := LoadTable(context.Background(), repo, "orders", ordersTable(5), 2)
	if err == nil {
		t.Fatal("expected error from second batch")
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (first batch only)", total)
	}
}

func TestLoadTableEmptyTable(t *testing.T) {
	repo := &fakeRepo{}
	total, err := LoadTable(context.Background(), repo, "orders", ordersTable(0), 100)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if total != 0 || len(repo.batches) != 0 {
		t.Fatalf("total = %d, batches = %d, want 0 and 0", total, len(repo.batches))
	}
}

func TestLoadTableRejectsBadBatchSize(t *testing.T) {
	if _, err := LoadTable(context.Background(), &fakeRepo{}, "orders", ordersTable(1), 0); err == nil {
		t.Fatal("expected error for batchSize 0")
	}
}

func TestLoadTableHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadTable(ctx, &fakeRepo{}, "orders", ordersTable(3), 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func ExampleLoadTable() {
	repo := &fakeRepo{}
	total, _ := LoadTable(context.Background(), repo, "orders", ordersTable(4), 2)
	fmt.Println(total)
	// Output: 4
}
