package kpi

import (
	"sort"

	"posetl/pkg/table"
)

// TopMenuItems sums quantity and revenue per menu item, highest revenue
// first. Optional: it requires the item_name enrichment column, so the driver
// only runs it when menu items were joined into the detail table.
type TopMenuItems struct{}

func (TopMenuItems) Name() string { return "top_menu_items" }

func (TopMenuItems) RequiredColumns() []string { return []string{"item_name"} }

func (k TopMenuItems) Calculate(detail *table.Table) (*table.Table, error) {
	return rankedBreakdown(detail, "item_name")
}

// RevenueByCategory sums quantity and revenue per category, highest revenue
// first. Optional in the same way as TopMenuItems.
type RevenueByCategory struct{}

func (RevenueByCategory) Name() string { return "revenue_by_category" }

func (RevenueByCategory) RequiredColumns() []string { return []string{"category_name"} }

func (k RevenueByCategory) Calculate(detail *table.Table) (*table.Table, error) {
	return rankedBreakdown(detail, "category_name")
}

// rankedBreakdown groups by the named enrichment column, sums quantity and
// line_total, and stably sorts descending by total_revenue so revenue ties
// keep ascending name order. Rows where the column is nil (unmatched left
// join) belong to no group.
func rankedBreakdown(detail *table.Table, nameCol string) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", nameCol); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		v := r[nameCol]
		if v == nil {
			continue
		}
		gr := g.get(table.AsString(v))
		gr.addQuantity(r)
		gr.addRevenue(r)
	}

	names := g.sortedKeys()
	sort.SliceStable(names, func(i, j int) bool {
		return g.byKey[names[i]].revenue.GreaterThan(g.byKey[names[j]].revenue)
	})

	out := table.New(nameCol, "total_quantity", "total_revenue")
	for _, name := range names {
		gr := g.byKey[name]
		out.Append(table.Row{
			nameCol:          name,
			"total_quantity": gr.quantity,
			"total_revenue":  gr.revenue,
		})
	}
	return out, nil
}
