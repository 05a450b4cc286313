package builtin

import (
	"testing"

	"posetl/pkg/table"
)

func TestDeDupKeepsFirstOccurrence(t *testing.T) {
	in := table.FromRows([]string{"id", "v"}, []table.Row{
		{"id": int64(1), "v": int64(10)},
		{"id": int64(1), "v": int64(10)},
		{"id": int64(2), "v": int64(20)},
		{"id": int64(3), "v": int64(30)},
	})

	out, err := DeDup{Keys: []string{"id"}}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("rows: got %d want 3", out.Len())
	}
	for i, wantID := range []int64{1, 2, 3} {
		if got := out.Row(i)["id"]; got != wantID {
			t.Fatalf("row %d: got id=%v want %v", i, got, wantID)
		}
	}
	if in.Len() != 4 {
		t.Fatalf("input mutated: len=%d", in.Len())
	}
}

func TestDeDupDuplicateValuesDifferentKeySurvive(t *testing.T) {
	in := table.FromRows([]string{"id", "v"}, []table.Row{
		{"id": int64(1), "v": int64(10)},
		{"id": int64(2), "v": int64(10)},
	})

	out, err := DeDup{Keys: []string{"id"}}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("rows: got %d want 2", out.Len())
	}
}

func TestDeDupNilKeyDistinctFromEmpty(t *testing.T) {
	in := table.FromRows([]string{"id"}, []table.Row{
		{"id": nil},
		{"id": ""},
	})

	out, err := DeDup{Keys: []string{"id"}}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("nil and empty collapsed: got %d rows", out.Len())
	}
}

func TestDeDupEmptyTable(t *testing.T) {
	in := table.New("id")
	out, err := DeDup{Keys: []string{"id"}}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 || !out.Has("id") {
		t.Fatalf("empty table shape changed: %v", out.Columns())
	}

	out.Append(table.Row{"id": int64(1)})
	if in.Len() != 0 {
		t.Fatal("mutating the result affected the input")
	}
}

func TestDeDupRequiresKeys(t *testing.T) {
	if _, err := (DeDup{}).Apply(table.New("id")); err == nil {
		t.Fatal("expected error for empty key set")
	}
}
