// Package samplegen produces a deterministic set of raw POS extracts for
// local development and demos. All randomness flows from the caller's
// *rand.Rand, so the same seed always yields byte-identical CSVs.
package samplegen

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"posetl/internal/sink"
	"posetl/pkg/table"
)

// Config controls the generated volume.
type Config struct {
	// Start is the first business day; midnight local time is assumed.
	Start time.Time

	// Days is the number of consecutive days to generate.
	Days int

	// OrdersPerDay is the mean order count; actual counts vary around it.
	OrdersPerDay int
}

// hourWeights biases order timestamps toward lunch and dinner service.
var hourWeights = map[int]int{
	11: 3, 12: 6, 13: 5, 14: 2,
	17: 2, 18: 5, 19: 6, 20: 4, 21: 2, 22: 1,
}

var locations = []string{"downtown", "uptown", "riverside"}

var paymentMethods = []string{"card", "cash", "mobile"}

type menuEntry struct {
	id       int64
	category int64
	name     string
	desc     string
	price    string
}

var menu = []menuEntry{
	{1, 1, "Burger", "classic beef burger", "49.50"},
	{2, 1, "Cheeseburger", "with aged cheddar", "54.00"},
	{3, 1, "Fries", "double fried", "19.00"},
	{4, 2, "Ribeye Steak", "300g, grilled", "139.00"},
	{5, 2, "Grilled Chicken", "half bird", "89.00"},
	{6, 3, "Caesar Salad", "with croutons", "45.00"},
	{7, 3, "Greek Salad", "feta and olives", "42.00"},
	{8, 4, "Lemonade", "house made", "15.00"},
	{9, 4, "Espresso", "double shot", "12.00"},
	{10, 5, "Cheesecake", "baked daily", "32.00"},
}

var categories = map[int64]string{
	1: "Fastfood", 2: "Grill", 3: "Salads", 4: "Drinks", 5: "Desserts",
}

// Generate writes the seven raw extract CSVs into dir.
func Generate(dir string, rng *rand.Rand, cfg Config) error {
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.OrdersPerDay <= 0 {
		cfg.OrdersPerDay = 40
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	}

	tables := map[string]*table.Table{
		"categories": categoriesTable(),
		"menu_items": menuTable(),
		"customers":  customersTable(rng),
		"staff":      staffTable(),
	}

	orders, items, payments := ordersTables(rng, cfg)
	tables["orders"] = orders
	tables["order_items"] = items
	tables["payments"] = payments

	for name, t := range tables {
		if err := sink.WriteCSV(filepath.Join(dir, name+".csv"), t); err != nil {
			return err
		}
	}
	return nil
}

func categoriesTable() *table.Table {
	t := table.New("category_id", "category_name")
	for id := int64(1); id <= int64(len(categories)); id++ {
		t.Append(table.Row{"category_id": id, "category_name": categories[id]})
	}
	return t
}

func menuTable() *table.Table {
	t := table.New("menu_item_id", "category_id", "item_name", "item_description", "unit_price")
	for _, m := range menu {
		t.Append(table.Row{
			"menu_item_id":     m.id,
			"category_id":      m.category,
			"item_name":        m.name,
			"item_description": m.desc,
			"unit_price":       m.price,
		})
	}
	return t
}

func customersTable(rng *rand.Rand) *table.Table {
	first := []string{"Alex", "Sam", "Jordan", "Casey", "Riley", "Morgan", "Avery", "Quinn"}
	last := []string{"Smith", "Jones", "Garcia", "Chen", "Novak", "Patel", "Kim", "Lopez"}

	t := table.New("customer_id", "first_name", "last_name", "email", "joined_at")
	for id := int64(1); id <= 60; id++ {
		f := first[rng.Intn(len(first))]
		l := last[rng.Intn(len(last))]
		joined := time.Date(2022, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
		t.Append(table.Row{
			"customer_id": id,
			"first_name":  f,
			"last_name":   l,
			"email":       fmt.Sprintf("%s.%s.%d@example.com", f, l, id),
			"joined_at":   joined,
		})
	}
	return t
}

func staffTable() *table.Table {
	t := table.New("staff_id", "first_name", "last_name", "role", "hired_at")
	rows := []table.Row{
		{"staff_id": int64(1), "first_name": "Dana", "last_name": "Reed", "role": "server", "hired_at": time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"staff_id": int64(2), "first_name": "Lee", "last_name": "Park", "role": "server", "hired_at": time.Date(2021, 8, 2, 0, 0, 0, 0, time.UTC)},
		{"staff_id": int64(3), "first_name": "Noa", "last_name": "Levi", "role": "manager", "hired_at": time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)},
		{"staff_id": int64(4), "first_name": "Kai", "last_name": "Mori", "role": "cook", "hired_at": time.Date(2022, 5, 23, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func ordersTables(rng *rand.Rand, cfg Config) (orders, items, payments *table.Table) {
	orders = table.New("order_id", "customer_id", "staff_id", "order_timestamp", "order_status", "location")
	items = table.New("order_item_id", "order_id", "menu_item_id", "quantity", "item_price")
	payments = table.New("payment_id", "order_id", "payment_method", "amount", "paid_at")

	var orderID, itemID int64
	for day := 0; day < cfg.Days; day++ {
		date := cfg.Start.AddDate(0, 0, day)
		// Weekends run noticeably busier.
		n := cfg.OrdersPerDay + rng.Intn(cfg.OrdersPerDay/2+1)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			n += cfg.OrdersPerDay / 2
		}

		for i := 0; i < n; i++ {
			orderID++
			ts := time.Date(date.Year(), date.Month(), date.Day(),
				pickHour(rng), rng.Intn(60), rng.Intn(60), 0, time.UTC)

			orders.Append(table.Row{
				"order_id":        orderID,
				"customer_id":     int64(1 + rng.Intn(60)),
				"staff_id":        int64(1 + rng.Intn(4)),
				"order_timestamp": ts,
				"order_status":    "completed",
				"location":        locations[rng.Intn(len(locations))],
			})

			total := decimal.Zero
			for j := 0; j < 1+rng.Intn(4); j++ {
				itemID++
				m := menu[rng.Intn(len(menu))]
				qty := int64(1 + rng.Intn(3))
				price := decimal.RequireFromString(m.price)
				total = total.Add(price.Mul(decimal.NewFromInt(qty)))

				items.Append(table.Row{
					"order_item_id": itemID,
					"order_id":      orderID,
					"menu_item_id":  m.id,
					"quantity":      qty,
					"item_price":    m.price,
				})
			}

			payments.Append(table.Row{
				"payment_id":     orderID,
				"order_id":       orderID,
				"payment_method": paymentMethods[rng.Intn(len(paymentMethods))],
				"amount":         total,
				"paid_at":        ts.Add(time.Duration(5+rng.Intn(40)) * time.Minute),
			})
		}
	}
	return orders, items, payments
}

// pickHour samples a service hour from the weighted distribution.
func pickHour(rng *rand.Rand) int {
	total := 0
	for _, w := range hourWeights {
		total += w
	}
	n := rng.Intn(total)
	for h := 0; h < 24; h++ {
		w, ok := hourWeights[h]
		if !ok {
			continue
		}
		if n < w {
			return h
		}
		n -= w
	}
	return 12
}
