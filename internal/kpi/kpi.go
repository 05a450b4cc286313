// Package kpi implements the business KPI engine: a fixed registry of named,
// stateless aggregations over the enriched order-detail table. Each KPI is
// independently invokable, reads its input as an immutable snapshot, and
// produces a small result table of its own.
//
// Shared grouping rules:
//
//   - A row whose grouping value is nil (null timestamp, unmatched menu item)
//     belongs to no group and is excluded from that KPI.
//   - Groups are emitted in ascending key order; the ranked KPIs (peak_hours,
//     top_menu_items, revenue_by_category) then re-sort stably by their
//     measure, descending, so ties keep ascending key order.
//   - Money is aggregated as decimals; nothing is rounded except where a KPI
//     documents it.
package kpi

import (
	"sort"

	"github.com/shopspring/decimal"

	"posetl/pkg/table"
)

// KPI is a named aggregation over the order-detail table.
type KPI interface {
	// Name is the stable identifier used for result files, sheets, and logs.
	Name() string

	// RequiredColumns lists the detail-table columns the calculation reads.
	// The driver uses this to decide whether an optional KPI can run.
	RequiredColumns() []string

	// Calculate computes the result table. It returns *table.SchemaError when
	// the detail table lacks a required column and never mutates its input.
	Calculate(detail *table.Table) (*table.Table, error)
}

// Mandatory returns the eight KPIs computed on every run. A SchemaError from
// any of these aborts the run.
func Mandatory() []KPI {
	return []KPI{
		DailyRevenue{},
		WeeklyRevenue{},
		MonthlyRevenue{},
		AverageOrderValue{},
		OrdersPerDay{},
		RevenuePerHour{},
		PeakHours{},
		WeekdayVsWeekend{},
	}
}

// Optional returns the KPIs that depend on enrichment columns. The driver
// checks RequiredColumns against the detail table and skips rather than
// errors when they are absent.
func Optional() []KPI {
	return []KPI{
		TopMenuItems{},
		RevenueByCategory{},
	}
}

// group accumulates the measures a KPI can emit for one grouping key.
type group struct {
	revenue  decimal.Decimal
	quantity int64
	orders   map[string]struct{}
}

// groups is an insertion-ordered map from string grouping key to accumulator.
// String keys are chosen so that lexicographic order matches the KPI's
// natural ascending key order (dates, zero-padded weeks and hours, names).
type groups struct {
	keys []string
	byKey map[string]*group
}

func newGroups() *groups {
	return &groups{byKey: make(map[string]*group)}
}

func (g *groups) get(key string) *group {
	if gr, ok := g.byKey[key]; ok {
		return gr
	}
	gr := &group{orders: make(map[string]struct{})}
	g.byKey[key] = gr
	g.keys = append(g.keys, key)
	return gr
}

// sortedKeys returns the grouping keys in ascending order.
func (g *groups) sortedKeys() []string {
	keys := append([]string(nil), g.keys...)
	sort.Strings(keys)
	return keys
}

func (gr *group) addRevenue(r table.Row) {
	if d, ok := table.AsDecimal(r["line_total"]); ok {
		gr.revenue = gr.revenue.Add(d)
	}
}

func (gr *group) addQuantity(r table.Row) {
	if q, ok := table.AsInt(r["quantity"]); ok {
		gr.quantity += q
	}
}

func (gr *group) addOrder(r table.Row) {
	if v := r["order_id"]; v != nil {
		gr.orders[table.AsString(v)] = struct{}{}
	}
}

func (gr *group) orderCount() int64 { return int64(len(gr.orders)) }
