package postgres

// Restaurant star schema, Postgres dialect.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		category_id   BIGINT PRIMARY KEY,
		category_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		menu_item_id     BIGINT PRIMARY KEY,
		category_id      BIGINT REFERENCES categories(category_id),
		item_name        TEXT NOT NULL,
		item_description TEXT,
		unit_price       NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGINT PRIMARY KEY,
		first_name  TEXT,
		last_name   TEXT,
		email       TEXT,
		joined_at   TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		staff_id   BIGINT PRIMARY KEY,
		first_name TEXT,
		last_name  TEXT,
		role       TEXT,
		hired_at   TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id        BIGINT PRIMARY KEY,
		customer_id     BIGINT REFERENCES customers(customer_id),
		staff_id        BIGINT REFERENCES staff(staff_id),
		order_timestamp TIMESTAMP NOT NULL,
		order_status    TEXT,
		location        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id BIGINT PRIMARY KEY,
		order_id      BIGINT NOT NULL REFERENCES orders(order_id),
		menu_item_id  BIGINT REFERENCES menu_items(menu_item_id),
		quantity      INTEGER NOT NULL,
		item_price    NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id     BIGINT PRIMARY KEY,
		order_id       BIGINT NOT NULL REFERENCES orders(order_id),
		payment_method TEXT,
		amount         NUMERIC(12,2),
		paid_at        TIMESTAMP
	)`,
}

// Derived KPI views, Postgres dialect.
var viewDDL = []string{
	`CREATE OR REPLACE VIEW kpi_daily_revenue AS
	SELECT o.order_timestamp::date AS order_date,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY o.order_timestamp::date`,

	`CREATE OR REPLACE VIEW kpi_average_order_value AS
	SELECT ROUND(AVG(order_total), 2) AS average_order_value
	FROM (
		SELECT order_id, SUM(quantity * item_price) AS order_total
		FROM order_items
		GROUP BY order_id
	) order_totals`,

	`CREATE OR REPLACE VIEW kpi_revenue_per_hour AS
	SELECT EXTRACT(HOUR FROM o.order_timestamp)::int AS hour,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1`,

	`CREATE OR REPLACE VIEW kpi_top_menu_items AS
	SELECT mi.item_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	GROUP BY mi.item_name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW kpi_revenue_by_category AS
	SELECT c.category_name,
	       SUM(oi.quantity) AS total_quantity,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM order_items oi
	JOIN menu_items mi ON mi.menu_item_id = oi.menu_item_id
	JOIN categories c ON c.category_id = mi.category_id
	GROUP BY c.category_name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW kpi_weekday_vs_weekend AS
	SELECT CASE WHEN EXTRACT(ISODOW FROM o.order_timestamp) >= 6
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1`,

	`CREATE OR REPLACE VIEW sales_trends_hourly AS
	SELECT o.order_timestamp::date AS order_date,
	       EXTRACT(HOUR FROM o.order_timestamp)::int AS hour,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1, 2`,

	`CREATE OR REPLACE VIEW sales_weekday_vs_weekend AS
	SELECT o.order_timestamp::date AS order_date,
	       CASE WHEN EXTRACT(ISODOW FROM o.order_timestamp) >= 6
	            THEN 'weekend' ELSE 'weekday' END AS day_type,
	       COUNT(DISTINCT o.order_id) AS orders_count,
	       SUM(oi.quantity * oi.item_price) AS total_revenue
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.order_id
	GROUP BY 1, 2`,
}
