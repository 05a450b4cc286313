package csv

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	in := "order_id,order_timestamp,location\n1,2023-01-02 10:00:00,Downtown\n2,,\n"

	tbl, skipped, err := NewParser(Options{TrimSpace: true}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped: got %d", skipped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows: got %d", tbl.Len())
	}
	if got := tbl.Row(0)["location"]; got != "Downtown" {
		t.Fatalf("location: got %v", got)
	}
	if got := tbl.Row(1)["order_timestamp"]; got != nil {
		t.Fatalf("empty cell should be nil, got %#v", got)
	}
}

func TestParseStripsBOMAndCanonicalizesHeaders(t *testing.T) {
	in := "\uFEFFOrder ID,Catégorie\n1,Coffee\n"

	tbl, _, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !tbl.Has("order_id") || !tbl.Has("categorie") {
		t.Fatalf("columns: got %v", tbl.Columns())
	}
}

func TestParseHeaderMapAndColumnSubset(t *testing.T) {
	in := "id,order_time,junk\n7,2023-01-02 10:00:00,x\n"

	p := NewParser(Options{
		HeaderMap: map[string]string{"id": "order_id", "order_time": "order_timestamp"},
		Columns:   []string{"order_id", "order_timestamp"},
	})
	tbl, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cols := tbl.Columns()
	if len(cols) != 2 || cols[0] != "order_id" || cols[1] != "order_timestamp" {
		t.Fatalf("columns: got %v", cols)
	}
	if tbl.Row(0)["order_id"] != "7" {
		t.Fatalf("order_id: got %v", tbl.Row(0)["order_id"])
	}
}

func TestParseSkipsShortRows(t *testing.T) {
	in := "a,b\n1,2\n3\n4,5\n"

	tbl, skipped, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Len() != 2 || skipped != 1 {
		t.Fatalf("rows=%d skipped=%d", tbl.Len(), skipped)
	}
}

func TestCanonicalHeader(t *testing.T) {
	cases := map[string]string{
		"Order ID":      "order_id",
		"  item-name ":  "item_name",
		"Catégorie":     "categorie",
		"unit_price":    "unit_price",
		"Qty (ordered)": "qty_ordered",
	}
	for in, want := range cases {
		if got := CanonicalHeader(in); got != want {
			t.Errorf("CanonicalHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
