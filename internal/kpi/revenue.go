package kpi

import (
	"fmt"
	"strconv"

	"posetl/pkg/table"
)

// DailyRevenue sums line_total per order date.
type DailyRevenue struct{}

func (DailyRevenue) Name() string { return "daily_revenue" }

func (DailyRevenue) RequiredColumns() []string {
	return []string{"order_timestamp", "line_total"}
}

func (k DailyRevenue) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		g.get(ts.Format("2006-01-02")).addRevenue(r)
	}

	out := table.New("order_date", "total_revenue")
	for _, day := range g.sortedKeys() {
		out.Append(table.Row{
			"order_date":    day,
			"total_revenue": g.byKey[day].revenue,
		})
	}
	return out, nil
}

// WeeklyRevenue sums line_total per (ISO year, ISO week).
type WeeklyRevenue struct{}

func (WeeklyRevenue) Name() string { return "weekly_revenue" }

func (WeeklyRevenue) RequiredColumns() []string {
	return []string{"order_timestamp", "line_total"}
}

func (k WeeklyRevenue) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		year, week := ts.ISOWeek()
		g.get(fmt.Sprintf("%04d-W%02d", year, week)).addRevenue(r)
	}

	out := table.New("year", "week", "total_revenue")
	for _, key := range g.sortedKeys() {
		year, _ := strconv.ParseInt(key[:4], 10, 64)
		week, _ := strconv.ParseInt(key[6:], 10, 64)
		out.Append(table.Row{
			"year":          year,
			"week":          week,
			"total_revenue": g.byKey[key].revenue,
		})
	}
	return out, nil
}

// MonthlyRevenue sums line_total per year-month.
type MonthlyRevenue struct{}

func (MonthlyRevenue) Name() string { return "monthly_revenue" }

func (MonthlyRevenue) RequiredColumns() []string {
	return []string{"order_timestamp", "line_total"}
}

func (k MonthlyRevenue) Calculate(detail *table.Table) (*table.Table, error) {
	if err := table.Require(detail, "order_detail", k.RequiredColumns()...); err != nil {
		return nil, err
	}

	g := newGroups()
	for _, r := range detail.Rows() {
		ts, ok := table.AsTime(r["order_timestamp"])
		if !ok {
			continue
		}
		g.get(ts.Format("2006-01")).addRevenue(r)
	}

	out := table.New("year_month", "total_revenue")
	for _, month := range g.sortedKeys() {
		out.Append(table.Row{
			"year_month":    month,
			"total_revenue": g.byKey[month].revenue,
		})
	}
	return out, nil
}
