package kpi

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posetl/pkg/table"
)

var detailColumns = []string{
	"order_item_id", "order_id", "menu_item_id", "quantity", "item_price",
	"order_timestamp", "location", "line_total", "item_name", "category_id",
	"category_name",
}

func ts(day, hour int) time.Time {
	return time.Date(2023, 1, day, hour, 0, 0, 0, time.UTC)
}

func row(orderID int64, when any, qty, price int64, extra table.Row) table.Row {
	r := table.Row{
		"order_id":        orderID,
		"order_timestamp": when,
		"quantity":        qty,
		"item_price":      decimal.NewFromInt(price),
		"line_total":      decimal.NewFromInt(qty * price),
	}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

// sampleDetail mirrors the reference scenario: three orders across a Monday,
// a Tuesday, and a Saturday, with order totals 130, 250, and 140.
func sampleDetail() *table.Table {
	return table.FromRows(detailColumns, []table.Row{
		row(1, ts(2, 10), 2, 50, table.Row{"item_name": "Burger", "category_name": "Fastfood"}),
		row(1, ts(2, 10), 1, 30, table.Row{"item_name": "Lemonade", "category_name": "Beverages"}),
		row(2, ts(3, 14), 3, 50, table.Row{"item_name": "Burger", "category_name": "Fastfood"}),
		row(2, ts(3, 14), 1, 100, table.Row{"item_name": "Biryani", "category_name": "Main Course"}),
		row(3, ts(7, 19), 1, 60, table.Row{"item_name": "Mocha", "category_name": "Coffee"}),
		row(3, ts(7, 19), 2, 40, table.Row{"item_name": "Latte", "category_name": "Coffee"}),
	})
}

func revenueOf(t *testing.T, r table.Row) decimal.Decimal {
	t.Helper()
	d, ok := table.AsDecimal(r["total_revenue"])
	require.True(t, ok, "total_revenue missing in %v", r)
	return d
}

func sumRevenue(t *testing.T, result *table.Table) decimal.Decimal {
	t.Helper()
	var sum decimal.Decimal
	for _, r := range result.Rows() {
		sum = sum.Add(revenueOf(t, r))
	}
	return sum
}

func TestDailyRevenueScenario(t *testing.T) {
	out, err := DailyRevenue{}.Calculate(sampleDetail())
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "2023-01-02", out.Row(0)["order_date"])
	assert.True(t, revenueOf(t, out.Row(0)).Equal(decimal.NewFromInt(130)))
	assert.True(t, revenueOf(t, out.Row(1)).Equal(decimal.NewFromInt(250)))
	assert.True(t, revenueOf(t, out.Row(2)).Equal(decimal.NewFromInt(140)))
	assert.True(t, sumRevenue(t, out).Equal(decimal.NewFromInt(520)))
}

// Revenue is conserved across every grouping dimension: whatever the grouping,
// the result's total_revenue sums to the detail table's line_total sum.
func TestRevenueConservation(t *testing.T) {
	detail := sampleDetail()
	var want decimal.Decimal
	for _, r := range detail.Rows() {
		d, _ := table.AsDecimal(r["line_total"])
		want = want.Add(d)
	}

	for _, k := range []KPI{DailyRevenue{}, WeeklyRevenue{}, MonthlyRevenue{}, RevenuePerHour{}, WeekdayVsWeekend{}} {
		out, err := k.Calculate(detail)
		require.NoError(t, err, k.Name())
		assert.True(t, sumRevenue(t, out).Equal(want),
			"%s: got %s want %s", k.Name(), sumRevenue(t, out), want)
	}
}

func TestWeeklyRevenueUsesISOWeek(t *testing.T) {
	// 2023-01-01 is a Sunday and belongs to ISO week 52 of 2022.
	detail := table.FromRows(detailColumns, []table.Row{
		row(1, time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), 1, 100, nil),
		row(2, ts(2, 12), 1, 50, nil),
	})

	out, err := WeeklyRevenue{}.Calculate(detail)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, int64(2022), out.Row(0)["year"])
	assert.Equal(t, int64(52), out.Row(0)["week"])
	assert.Equal(t, int64(2023), out.Row(1)["year"])
	assert.Equal(t, int64(1), out.Row(1)["week"])
}

func TestMonthlyRevenueKeys(t *testing.T) {
	detail := table.FromRows(detailColumns, []table.Row{
		row(1, time.Date(2023, 2, 1, 9, 0, 0, 0, time.UTC), 1, 10, nil),
		row(2, ts(2, 9), 1, 20, nil),
	})

	out, err := MonthlyRevenue{}.Calculate(detail)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "2023-01", out.Row(0)["year_month"])
	assert.Equal(t, "2023-02", out.Row(1)["year_month"])
}

func TestAverageOrderValueScenario(t *testing.T) {
	out, err := AverageOrderValue{}.Calculate(sampleDetail())
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	avg := out.Row(0)["average_order_value"].(decimal.Decimal)
	// (130 + 250 + 140) / 3 = 173.333... -> 173.33
	assert.Equal(t, "173.33", avg.StringFixed(2))
}

func TestAverageOrderValueRoundsHalfAwayFromZero(t *testing.T) {
	detail := table.FromRows(detailColumns, []table.Row{
		{"order_id": int64(1), "line_total": decimal.RequireFromString("10.01")},
		{"order_id": int64(2), "line_total": decimal.RequireFromString("10.02")},
	})

	out, err := AverageOrderValue{}.Calculate(detail)
	require.NoError(t, err)
	// mean 10.015 -> 10.02
	assert.Equal(t, "10.02", out.Row(0)["average_order_value"].(decimal.Decimal).StringFixed(2))
}

func TestAverageOrderValueEmptyDetail(t *testing.T) {
	out, err := AverageOrderValue{}.Calculate(table.New(detailColumns...))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestOrdersPerDayCountsDistinctOrders(t *testing.T) {
	out, err := OrdersPerDay{}.Calculate(sampleDetail())
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	for i, want := range []int64{1, 1, 1} {
		assert.Equal(t, want, out.Row(i)["orders_count"], "row %d", i)
	}
}

func TestPeakHoursSortedDescending(t *testing.T) {
	detail := table.FromRows(detailColumns, []table.Row{
		row(1, ts(2, 12), 1, 10, nil),
		row(2, ts(2, 12), 1, 10, nil),
		row(3, ts(2, 19), 1, 10, nil),
		row(4, ts(2, 8), 1, 10, nil),
		row(5, ts(2, 19), 1, 10, nil),
		row(6, ts(2, 19), 1, 10, nil),
	})

	out, err := PeakHours{}.Calculate(detail)
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, int64(19), out.Row(0)["hour"])
	prev := out.Row(0)["orders_count"].(int64)
	for i := 1; i < out.Len(); i++ {
		cur := out.Row(i)["orders_count"].(int64)
		assert.LessOrEqual(t, cur, prev, "peak_hours not non-increasing at row %d", i)
		prev = cur
	}
}

func TestPeakHoursTiesKeepHourOrder(t *testing.T) {
	detail := table.FromRows(detailColumns, []table.Row{
		row(1, ts(2, 15), 1, 10, nil),
		row(2, ts(2, 9), 1, 10, nil),
	})

	out, err := PeakHours{}.Calculate(detail)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, int64(9), out.Row(0)["hour"])
	assert.Equal(t, int64(15), out.Row(1)["hour"])
}

func TestWeekdayVsWeekendScenario(t *testing.T) {
	out, err := WeekdayVsWeekend{}.Calculate(sampleDetail())
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	weekday := out.Row(0)
	weekend := out.Row(1)
	assert.Equal(t, "weekday", weekday["day_type"])
	assert.Equal(t, int64(2), weekday["orders_count"])
	assert.True(t, weekday["total_revenue"].(decimal.Decimal).Equal(decimal.NewFromInt(380)))
	assert.Equal(t, "weekend", weekend["day_type"])
	assert.Equal(t, int64(1), weekend["orders_count"])
	assert.True(t, weekend["total_revenue"].(decimal.Decimal).Equal(decimal.NewFromInt(140)))
}

func TestTopMenuItemsRankedByRevenue(t *testing.T) {
	out, err := TopMenuItems{}.Calculate(sampleDetail())
	require.NoError(t, err)

	require.GreaterOrEqual(t, out.Len(), 2)
	assert.Equal(t, "Burger", out.Row(0)["item_name"])
	assert.Equal(t, int64(5), out.Row(0)["total_quantity"])
	assert.True(t, out.Row(0)["total_revenue"].(decimal.Decimal).Equal(decimal.NewFromInt(250)))

	prev := out.Row(0)["total_revenue"].(decimal.Decimal)
	for i := 1; i < out.Len(); i++ {
		cur := out.Row(i)["total_revenue"].(decimal.Decimal)
		assert.False(t, cur.GreaterThan(prev), "top_menu_items not non-increasing at row %d", i)
		prev = cur
	}
}

func TestRevenueByCategoryRankedByRevenue(t *testing.T) {
	out, err := RevenueByCategory{}.Calculate(sampleDetail())
	require.NoError(t, err)

	assert.Equal(t, "Fastfood", out.Row(0)["category_name"])
	prev := out.Row(0)["total_revenue"].(decimal.Decimal)
	for i := 1; i < out.Len(); i++ {
		cur := out.Row(i)["total_revenue"].(decimal.Decimal)
		assert.False(t, cur.GreaterThan(prev), "revenue_by_category not non-increasing at row %d", i)
		prev = cur
	}
}

func TestSchemaErrors(t *testing.T) {
	bare := table.New("order_id")
	for _, k := range []KPI{DailyRevenue{}, WeeklyRevenue{}, MonthlyRevenue{}, RevenuePerHour{}, TopMenuItems{}, RevenueByCategory{}} {
		_, err := k.Calculate(bare)
		var se *table.SchemaError
		require.ErrorAs(t, err, &se, k.Name())
	}

	noID := table.New("line_total")
	_, err := AverageOrderValue{}.Calculate(noID)
	var se *table.SchemaError
	require.ErrorAs(t, err, &se)
}

// Rows whose timestamp is nil (order item without a matching order) belong to
// no time-based group.
func TestNullTimestampRowsExcluded(t *testing.T) {
	detail := table.FromRows(detailColumns, []table.Row{
		row(1, ts(2, 10), 1, 100, nil),
		row(2, nil, 1, 999, nil),
	})

	out, err := DailyRevenue{}.Calculate(detail)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.True(t, sumRevenue(t, out).Equal(decimal.NewFromInt(100)))
}

func TestCalculateDoesNotMutateDetail(t *testing.T) {
	detail := sampleDetail()
	snapshot := detail.Clone()

	for _, k := range append(Mandatory(), Optional()...) {
		_, err := k.Calculate(detail)
		require.NoError(t, err, k.Name())
	}

	require.Equal(t, snapshot.Len(), detail.Len())
	for i := range detail.Rows() {
		assert.Equal(t, snapshot.Row(i), detail.Row(i), "row %d changed", i)
	}
}
