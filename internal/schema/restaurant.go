package schema

// Layout is the canonical timestamp layout used by the POS extracts.
const Layout = "2006-01-02 15:04:05"

// Contracts for the seven raw extracts, keyed by table name. Load order for
// the warehouse follows foreign-key dependencies; see LoadOrder.
var (
	Orders = Contract{
		Name: "orders",
		Fields: []Field{
			{Name: "order_id", Type: "int", Required: true},
			{Name: "customer_id", Type: "int"},
			{Name: "staff_id", Type: "int"},
			{Name: "order_timestamp", Type: "timestamp", Required: true, Layout: Layout},
			{Name: "order_status", Type: "text"},
			{Name: "location", Type: "text"},
		},
		DedupKeys: []string{"order_id"},
	}

	OrderItems = Contract{
		Name: "order_items",
		Fields: []Field{
			{Name: "order_item_id", Type: "int", Required: true},
			{Name: "order_id", Type: "int", Required: true},
			{Name: "menu_item_id", Type: "int", Required: true},
			{Name: "quantity", Type: "int", Required: true},
			{Name: "item_price", Type: "number", Required: true},
		},
		DedupKeys: []string{"order_item_id"},
	}

	MenuItems = Contract{
		Name: "menu_items",
		Fields: []Field{
			{Name: "menu_item_id", Type: "int", Required: true},
			{Name: "category_id", Type: "int"},
			{Name: "item_name", Type: "text", Required: true},
			{Name: "item_description", Type: "text"},
			{Name: "unit_price", Type: "number", Required: true},
		},
		DedupKeys: []string{"menu_item_id"},
	}

	Categories = Contract{
		Name: "categories",
		Fields: []Field{
			{Name: "category_id", Type: "int", Required: true},
			{Name: "category_name", Type: "text", Required: true},
		},
		DedupKeys: []string{"category_id"},
	}

	Customers = Contract{
		Name: "customers",
		Fields: []Field{
			{Name: "customer_id", Type: "int", Required: true},
			{Name: "first_name", Type: "text"},
			{Name: "last_name", Type: "text"},
			{Name: "email", Type: "text"},
			{Name: "joined_at", Type: "timestamp", Layout: Layout},
		},
		DedupKeys: []string{"customer_id"},
	}

	Staff = Contract{
		Name: "staff",
		Fields: []Field{
			{Name: "staff_id", Type: "int", Required: true},
			{Name: "first_name", Type: "text"},
			{Name: "last_name", Type: "text"},
			{Name: "role", Type: "text"},
			{Name: "hired_at", Type: "timestamp", Layout: Layout},
		},
		DedupKeys: []string{"staff_id"},
	}

	Payments = Contract{
		Name: "payments",
		Fields: []Field{
			{Name: "payment_id", Type: "int", Required: true},
			{Name: "order_id", Type: "int", Required: true},
			{Name: "payment_method", Type: "text"},
			{Name: "amount", Type: "number"},
			{Name: "paid_at", Type: "timestamp", Layout: Layout},
		},
		DedupKeys: []string{"payment_id"},
	}
)

// All maps table name to contract.
var All = map[string]Contract{
	"orders":      Orders,
	"order_items": OrderItems,
	"menu_items":  MenuItems,
	"categories":  Categories,
	"customers":   Customers,
	"staff":       Staff,
	"payments":    Payments,
}

// LoadOrder lists raw tables in foreign-key dependency order for warehouse
// loads. Parents come before children.
var LoadOrder = []string{
	"categories",
	"menu_items",
	"customers",
	"staff",
	"orders",
	"order_items",
	"payments",
}
