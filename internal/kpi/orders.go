package kpi

import (
	"github.com/shopspring/decimal"

	"posetl/pkg/table"
)

// AverageOrderValue computes the mean of per-order line_total sums, rounded
// to 2 decimal places after the mean (half away from zero). The result is a
// single-row table.
type AverageOrderValue struct{}

func (AverageOrderValue) Name() string { return "average_order_value" }

func (AverageOrderValue) RequiredColumns() []string {
	return []string{"order_id", "line_total"}
}

func (k AverageOrderValue) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		v := r["order_id"]
		if v == nil {
			continue
		}
		g.get(table.AsString(v)).addRevenue(r)
	}

	out := table.New("average_order_value")
	if len(g.keys) == 0 {
		return out, nil
	}

	var total decimal.Decimal
	for _, gr := range g.byKey {
		total = total.Add(gr.revenue)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(g.keys)))).Round(2)
	out.Append(table.Row{"average_order_value": avg})
	return out, nil
}

// OrdersPerDay counts distinct orders per order date.
type OrdersPerDay struct{}

func (OrdersPerDay) Name() string { return "orders_per_day" }

func (OrdersPerDay) RequiredColumns() []string {
	return []string{"order_timestamp", "order_id"}
}

func (k OrdersPerDay) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		g.get(ts.Format("2006-01-02")).addOrder(r)
	}

	out := table.New("order_date", "orders_count")
	for _, day := range g.sortedKeys() {
		out.Append(table.Row{
			"order_date":   day,
			"orders_count": g.byKey[day].orderCount(),
		})
	}
	return out, nil
}
