package builtin

import (
	"errors"
	"testing"
	"time"

	"posetl/pkg/table"
)

func ordersTable(rows ...table.Row) *table.Table {
	return table.FromRows([]string{"order_id", "order_timestamp", "location"}, rows)
}

func TestOrderValidatorMissingColumnFails(t *testing.T) {
	in := table.FromRows([]string{"order_id", "location"}, []table.Row{
		{"order_id": int64(1), "location": "Downtown"},
	})

	_, err := OrderValidator{}.Apply(in)
	var se *table.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Missing) != 1 || se.Missing[0] != "order_timestamp" {
		t.Fatalf("missing: got %v", se.Missing)
	}
}

func TestOrderValidatorDropsNullTimestampRows(t *testing.T) {
	ts := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
	in := ordersTable(
		table.Row{"order_id": int64(1), "order_timestamp": ts},
		table.Row{"order_id": int64(2), "order_timestamp": nil},
		table.Row{"order_id": int64(3), "order_timestamp": ts},
	)

	out, err := OrderValidator{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("rows: got %d want 2", out.Len())
	}
	if got := out.Row(0)["order_id"]; got != int64(1) {
		t.Fatalf("first survivor: got %v", got)
	}
	if in.Len() != 3 {
		t.Fatalf("input mutated: len=%d", in.Len())
	}
}

func TestOrderValidatorResultIsACopy(t *testing.T) {
	ts := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
	in := ordersTable(table.Row{"order_id": int64(1), "order_timestamp": ts})

	out, err := OrderValidator{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out.Row(0)["location"] = "changed"
	if in.Row(0)["location"] != nil {
		t.Fatal("mutation of result reached the input table")
	}
}

func TestMenuItemValidator(t *testing.T) {
	in := table.FromRows(
		[]string{"menu_item_id", "item_name", "unit_price"},
		[]table.Row{
			{"menu_item_id": int64(1), "item_name": "Latte", "unit_price": int64(55)},
			{"menu_item_id": int64(2), "item_name": nil, "unit_price": int64(40)},
			{"menu_item_id": int64(3), "item_name": "Mocha", "unit_price": nil},
		},
	)

	out, err := MenuItemValidator{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 1 || out.Row(0)["item_name"] != "Latte" {
		t.Fatalf("unexpected survivors: %v", out.Rows())
	}

	_, err = MenuItemValidator{}.Apply(table.New("menu_item_id"))
	var se *table.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}
