package kpi

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"posetl/pkg/table"
)

// RevenuePerHour sums line_total per hour of day (0-23).
type RevenuePerHour struct{}

func (RevenuePerHour) Name() string { return "revenue_per_hour" }

func (RevenuePerHour) RequiredColumns() []string {
	return []string{"order_timestamp", "line_total"}
}

func (k RevenuePerHour) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		g.get(fmt.Sprintf("%02d", ts.Hour())).addRevenue(r)
	}

	out := table.New("hour", "total_revenue")
	for _, key := range g.sortedKeys() {
		hour, _ := strconv.ParseInt(key, 10, 64)
		out.Append(table.Row{
			"hour":          hour,
			"total_revenue": g.byKey[key].revenue,
		})
	}
	return out, nil
}

// PeakHours counts distinct orders per hour of day, busiest hour first.
// The sort is stable, so hours tied on orders_count stay in ascending hour
// order.
type PeakHours struct{}

func (PeakHours) Name() string { return "peak_hours" }

func (PeakHours) RequiredColumns() []string {
	return []string{"order_timestamp", "order_id"}
}

func (k PeakHours) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		g.get(fmt.Sprintf("%02d", ts.Hour())).addOrder(r)
	}

	type hourCount struct {
		hour  int64
		count int64
	}
	ranked := make([]hourCount, 0, len(g.keys))
	for _, key := range g.sortedKeys() {
		hour, _ := strconv.ParseInt(key, 10, 64)
		ranked = append(ranked, hourCount{hour: hour, count: g.byKey[key].orderCount()})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})

	out := table.New("hour", "orders_count")
	for _, hc := range ranked {
		out.Append(table.Row{"hour": hc.hour, "orders_count": hc.count})
	}
	return out, nil
}

// WeekdayVsWeekend splits distinct order counts and revenue between weekdays
// and weekends (Saturday and Sunday).
type WeekdayVsWeekend struct{}

func (WeekdayVsWeekend) Name() string { return "weekday_vs_weekend" }

func (WeekdayVsWeekend) RequiredColumns() []string {
	return []string{"order_timestamp", "order_id", "line_total"}
}

func (k WeekdayVsWeekend) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		dayType := "weekday"
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			dayType = "weekend"
		}
		gr := g.get(dayType)
		gr.addOrder(r)
		gr.addRevenue(r)
	}

	out := table.New("day_type", "orders_count", "total_revenue")
	for _, dayType := range g.sortedKeys() {
		gr := g.byKey[dayType]
		out.Append(table.Row{
			"day_type":      dayType,
			"orders_count":  gr.orderCount(),
			"total_revenue": gr.revenue,
		})
	}
	return out, nil
}
