// Package detail builds the enriched order-detail fact table: one row per
// order item, left-joined with its order's timestamp and location and, when
// available, the menu item's name and category. This table is the sole input
// to every KPI.
package detail

import (
	"posetl/pkg/table"
)

// Build joins order items with orders on order_id and computes
// line_total = quantity × item_price for every row. line_total is always
// recomputed, never carried over from the input.
//
// All joins are left joins: an order item with no matching order, menu item,
// or category still appears, with the enrichment columns nil. menuItems and
// categories are optional; passing nil only means the name/category columns
// (and the KPIs that need them) are absent. categories is only joined when
// menuItems contributed a category_id column.
func Build(orders, items, menuItems, categories *table.Table) (*table.Table, error) {
	if err := table.Require(items, "order_items", "order_id", "quantity", "item_price"); err != nil {
		return nil, err
	}
	if err := table.Require(orders, "orders", "order_id"); err != nil {
		return nil, err
	}

	orderByID := indexBy(orders, "order_id")

	// Inputs may already carry a stale line_total column; dedupe so the
	// header stays unique while the value is recomputed below.
	cols := appendUnique(items.Columns(), "order_timestamp", "location", "line_total")
	joinMenu := menuItems != nil
	if joinMenu {
		if err := table.Require(menuItems, "menu_items", "menu_item_id"); err != nil {
			return nil, err
		}
		cols = appendUnique(cols, "item_name", "category_id")
	}
	joinCategories := joinMenu && categories != nil
	if joinCategories {
		if err := table.Require(categories, "categories", "category_id"); err != nil {
			return nil, err
		}
		cols = appendUnique(cols, "category_name")
	}

	var menuByID, categoryByID map[string]table.Row
	if joinMenu {
		menuByID = indexBy(menuItems, "menu_item_id")
	}
	if joinCategories {
		categoryByID = indexBy(categories, "category_id")
	}

	out := table.New(cols...)
	for _, item := range items.Rows() {
		row := make(table.Row, len(cols))
		for k, v := range item {
			row[k] = v
		}

		if order, ok := lookup(orderByID, item["order_id"]); ok {
			row["order_timestamp"] = order["order_timestamp"]
			row["location"] = order["location"]
		} else {
			row["order_timestamp"] = nil
			row["location"] = nil
		}

		row["line_total"] = lineTotal(item["quantity"], item["item_price"])

		if joinMenu {
			if menu, ok := lookup(menuByID, item["menu_item_id"]); ok {
				row["item_name"] = menu["item_name"]
				row["category_id"] = menu["category_id"]
			} else {
				row["item_name"] = nil
				row["category_id"] = nil
			}
		}
		if joinCategories {
			if cat, ok := lookup(categoryByID, row["category_id"]); ok {
				row["category_name"] = cat["category_name"]
			} else {
				row["category_name"] = nil
			}
		}

		out.Append(row)
	}
	return out, nil
}

// appendUnique appends each name to cols unless already present.
func appendUnique(cols []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, c := range cols {
			if c == name {
				found = true
				break
			}
		}
		if !found {
			cols = append(cols, name)
		}
	}
	return cols
}

// lineTotal multiplies quantity by item_price as decimals. If either operand
// is missing or non-numeric the total is nil rather than a guessed zero.
func lineTotal(quantity, price any) any {
	q, ok := table.AsDecimal(quantity)
	if !ok {
		return nil
	}
	p, ok := table.AsDecimal(price)
	if !ok {
		return nil
	}
	return q.Mul(p)
}

// indexBy maps the string form of each row's key column to the row. The first
// occurrence of a key wins, matching the upstream keep-first dedup policy.
func indexBy(t *table.Table, key string) map[string]table.Row {
	idx := make(map[string]table.Row, t.Len())
	for _, r := range t.Rows() {
		v := r[key]
		if v == nil {
			continue
		}
		k := table.AsString(v)
		if _, exists := idx[k]; !exists {
			idx[k] = r
		}
	}
	return idx
}

func lookup(idx map[string]table.Row, key any) (table.Row, bool) {
	if key == nil {
		return nil, false
	}
	r, ok := idx[table.AsString(key)]
	return r, ok
}
