// Package builtin contains the reusable transformers of the ETL: validation,
// timestamp normalization, de-duplication, and contract-driven coercion.
//
// All transformers follow the same policy split: a table missing a required
// column is a shape problem and fails with *table.SchemaError; a row with a
// missing or malformed value is a quality problem and is silently dropped.
// Validators never repair or impute values.
package builtin

import (
	"posetl/pkg/table"
)

// OrderValidator enforces the orders contract: the order_id and
// order_timestamp columns must exist, and rows without a timestamp are
// dropped. Null timestamps typically come from the normalizer quarantining
// unparseable values.
type OrderValidator struct{}

func (OrderValidator) Apply(in *table.Table) (*table.Table, error) {
	if err := table.Require(in, "orders", "order_id", "order_timestamp"); err != nil {
		return nil, err
	}
	return dropNull(in, "order_timestamp"), nil
}

// MenuItemValidator enforces the menu_items contract: menu_item_id, item_name
// and unit_price columns must exist; rows with a null item_name or unit_price
// are dropped.
type MenuItemValidator struct{}

func (MenuItemValidator) Apply(in *table.Table) (*table.Table, error) {
	if err := table.Require(in, "menu_items", "menu_item_id", "item_name", "unit_price"); err != nil {
		return nil, err
	}
	return dropNull(in, "item_name", "unit_price"), nil
}

// dropNull returns a new table containing only the rows where every named
// column is non-nil. Row order is preserved. Surviving rows are copied so
// that edits to the result never reach the input table.
func dropNull(in *table.Table, cols ...string) *table.Table {
	out := table.New(in.Columns()...)
	for _, r := range in.Rows() {
		keep := true
		for _, c := range cols {
			if r[c] == nil {
				keep = false
				break
			}
		}
		if keep {
			out.Append(copyRow(r))
		}
	}
	return out
}

func copyRow(r table.Row) table.Row {
	cp := make(table.Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
