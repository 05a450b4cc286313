package sqlite

// Restaurant star schema, SQLite dialect. Parents precede children so the
// script can run with foreign keys enabled.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		category_id   INTEGER PRIMARY KEY,
		category_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		menu_item_id     INTEGER PRIMARY KEY,
		category_id      INTEGER REFERENCES categories(category_id),
		item_name        TEXT NOT NULL,
		item_description TEXT,
		unit_price       NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		first_name  TEXT,
		last_name   TEXT,
		email       TEXT,
		joined_at   TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		staff_id   INTEGER PRIMARY KEY,
		first_name TEXT,
		last_name  TEXT,
		role       TEXT,
		hired_at   TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id        INTEGER PRIMARY KEY,
		customer_id     INTEGER REFERENCES customers(customer_id),
		staff_id        INTEGER REFERENCES staff(staff_id),
		order_timestamp TIMESTAMP NOT NULL,
		order_status    TEXT,
		location        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id      INTEGER NOT NULL REFERENCES orders(order_id),
		menu_item_id  INTEGER REFERENCES menu_items(menu_item_id),
		quantity      INTEGER NOT NULL,
		item_price    NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id     INTEGER PRIMARY KEY,
		order_id       INTEGER NOT NULL REFERENCES orders(order_id),
		payment_method TEXT,
		amount         NUMERIC,
		paid_at        TIMESTAMP
	)`,
}

// Derived KPI views over the base tables, SQLite dialect.
var viewDDL = []string{
	`CREATE VIEW IF NOT EXISTS kpi_daily_revenue AS
	SELECT date(o.order_timestamp) AS order_date,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY date(o.order_timestamp)`,

	`CREATE VIEW IF NOT EXISTS kpi_average_order_value AS
	SELECT ROUND(AVG(order_total), 2) AS average_order_value
	FROM (
		SELECT order_id, SUM(quantity * item_price) AS order_total
		FROM order_items
		GROUP BY order_id
	)`,

	`CREATE VIEW IF NOT EXISTS kpi_revenue_per_hour AS
	SELECT CAST(strftime('%H', o.order_timestamp) AS INTEGER) AS hour,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY hour`,

	`CREATE VIEW IF NOT EXISTS kpi_top_menu_items AS
	SELECT mi.item_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	GROUP BY mi.item_name
	ORDER BY total_revenue DESC`,

	`CREATE VIEW IF NOT EXISTS kpi_revenue_by_category AS
	SELECT c.category_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	JOIN categories c ON c.category_id = mi.category_id
	GROUP BY c.category_name
	ORDER BY total_revenue DESC`,

	`CREATE VIEW IF NOT EXISTS kpi_weekday_vs_weekend AS
	SELECT CASE WHEN strftime('%w', o.order_timestamp) IN ('0','6')
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY day_type`,

	`CREATE VIEW IF NOT EXISTS sales_trends_hourly AS
	SELECT date(o.order_timestamp) AS order_date,
	       CAST(strftime('%H', o.order_timestamp) AS INTEGER) AS hour,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY order_date, hour`,

	`CREATE VIEW IF NOT EXISTS sales_weekday_vs_weekend AS
	SELECT date(o.order_timestamp) AS order_date,
	       CASE WHEN strftime('%w', o.order_timestamp) IN ('0','6')
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY order_date, day_type`,
}
